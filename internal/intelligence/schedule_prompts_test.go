package intelligence

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func bangkok(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

func sampleInput(t *testing.T) ScheduleInput {
	loc := bangkok(t)
	exam := time.Date(2025, 1, 20, 2, 0, 0, 0, time.UTC)
	return ScheduleInput{
		Now:    time.Date(2025, 1, 9, 14, 30, 0, 0, loc),
		Config: domain.ScheduleConfig{SessionDurationMin: 50, BreakDurationMin: 10},
		Subjects: []*domain.Subject{
			{Name: "History of Art", Difficulty: domain.DifficultyHard, ExamAt: &exam},
			{Name: "Calculus", Difficulty: domain.DifficultyEasy},
		},
		Slots: []domain.AvailabilitySlot{
			{Day: domain.Monday, Hour: 9},
			{Day: domain.Sunday, Hour: 23},
		},
		HorizonDays: 5,
	}
}

func TestBuildSchedulePrompt_ContainsInputs(t *testing.T) {
	p := BuildSchedulePrompt(sampleInput(t))

	assert.Contains(t, p, "Current Date/Time: 2025-01-09 14:30 (Do NOT schedule anything before this time).")
	assert.Contains(t, p, "Session Duration: 50 minutes")
	assert.Contains(t, p, "Break Duration: 10 minutes")
	assert.Contains(t, p, `{"name":"History of Art","difficulty":"Hard","exam_date":"2025-01-20 09:00"}`)
	assert.Contains(t, p, `{"name":"Calculus","difficulty":"Easy","exam_date":"No exam date"}`)
	assert.Contains(t, p, `["Monday: 09:00 - 10:00","Sunday: 23:00 - 00:00"]`)
	assert.Contains(t, p, "Plan for the next 5 days only.")
	assert.Contains(t, p, "STRICTLY as a JSON Array")
	assert.Contains(t, p, `"subject_name"`)
	assert.Contains(t, p, `"start_time"`)
	assert.Contains(t, p, `"end_time"`)
	assert.Contains(t, p, `"topic"`)
	assert.Contains(t, p, "Do NOT paraphrase")
	assert.Contains(t, p, "Do NOT abbreviate")
}

func TestBuildSchedulePrompt_NoAvailability(t *testing.T) {
	in := sampleInput(t)
	in.Slots = nil

	p := BuildSchedulePrompt(in)
	assert.Contains(t, p, noAvailabilityMsg)
	assert.NotContains(t, p, "User's available slots")
}

func TestBuildSchedulePrompt_Deterministic(t *testing.T) {
	in := sampleInput(t)
	assert.Equal(t, BuildSchedulePrompt(in), BuildSchedulePrompt(in))
}

func TestBuildSchedulePrompt_DefaultHorizon(t *testing.T) {
	in := sampleInput(t)
	in.HorizonDays = 0
	assert.True(t, strings.Contains(BuildSchedulePrompt(in), "next 5 days"))
}

func TestBuildSchedulePrompt_SubjectNamesVerbatim(t *testing.T) {
	in := sampleInput(t)
	in.Subjects = []*domain.Subject{{Name: `Thai "Lit" & Culture`, Difficulty: domain.DifficultyMedium}}

	p := BuildSchedulePrompt(in)
	assert.Contains(t, p, `"name":"Thai \"Lit\" & Culture"`)
}
