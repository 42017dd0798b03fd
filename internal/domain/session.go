package domain

import "time"

// StudySession is one scheduled block of study for a subject.
type StudySession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	SubjectID       string    `json:"subject_id"`
	SubjectName     string    `json:"subject_name,omitempty"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Topic           string    `json:"topic"`
	Completed       bool      `json:"completed"`
	Synced          bool      `json:"synced"`
	ExternalEventID *string   `json:"external_event_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DurationMin returns the planned length of the session in whole minutes.
func (s *StudySession) DurationMin() int {
	return int(s.EndAt.Sub(s.StartAt).Minutes())
}

// MarkSynced records the remote event id after a successful push.
func (s *StudySession) MarkSynced(eventID string) {
	s.ExternalEventID = &eventID
	s.Synced = true
}

// ScheduleConfig is the per-run configuration handed to the planner.
type ScheduleConfig struct {
	SessionDurationMin int `json:"session_duration_min" validate:"min=15,max=240"`
	BreakDurationMin   int `json:"break_duration_min" validate:"min=0,max=60"`
}
