package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/alexanderramin/studyplan/internal/domain"
)

const productID = "-//studyplan//Study Schedule//EN"

// Options controls how sessions are titled and reminded.
type Options struct {
	TitlePrefix     string
	ReminderMinutes int
}

// WriteICS writes sessions as an iCalendar feed, one VEVENT per session.
func WriteICS(w io.Writer, sessions []*domain.StudySession, loc *time.Location, opts Options) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRTimezone(loc.String())

	stamp := time.Now().UTC()
	for _, s := range sessions {
		ev := cal.AddEvent(s.ID)
		ev.SetDtStampTime(stamp)
		ev.SetCreatedTime(s.CreatedAt)
		ev.SetStartAt(s.StartAt.In(loc))
		ev.SetEndAt(s.EndAt.In(loc))
		ev.SetSummary(opts.TitlePrefix + s.SubjectName)
		ev.SetDescription("Topic: " + s.Topic)

		if opts.ReminderMinutes > 0 {
			alarm := ev.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(fmt.Sprintf("-PT%dM", opts.ReminderMinutes))
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing ics: %w", err)
	}
	return nil
}
