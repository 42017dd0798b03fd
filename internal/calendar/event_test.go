package calendar

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEventFromSession(t *testing.T) {
	loc := bangkok(t)
	subject := testutil.NewTestSubject("user-1", "Physics")
	start := time.Date(2025, 1, 10, 2, 0, 0, 0, time.UTC)
	s := testutil.NewTestStudySession(subject, testutil.WithStart(start, 50*time.Minute), testutil.WithTopic("Optics"))

	ev := EventFromSession(s, EventOptions{TitlePrefix: "Study: ", ReminderMinutes: 10}, loc)

	assert.Equal(t, "Study: Physics", ev.Summary)
	assert.Equal(t, "Topic: Optics\n(Created by Study Planner)", ev.Description)
	assert.Equal(t, 9, ev.Start.Hour())
	assert.Equal(t, loc, ev.Start.Location())
	assert.Equal(t, 50*time.Minute, ev.End.Sub(ev.Start))
	assert.Equal(t, 10, ev.ReminderMinutes)
}
