package domain

import "time"

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email" validate:"required,email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserSettings struct {
	UserID               string `json:"user_id"`
	SessionDurationMin   int    `json:"session_duration_min" validate:"min=15,max=240"`
	BreakDurationMin     int    `json:"break_duration_min" validate:"min=0,max=60"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	Bio                  string `json:"bio,omitempty" validate:"max=255"`
	AcademicGoal         string `json:"academic_goal,omitempty" validate:"max=255"`
}

// DefaultSettings returns the settings a user has before saving any.
func DefaultSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:               userID,
		SessionDurationMin:   60,
		BreakDurationMin:     10,
		NotificationsEnabled: true,
	}
}

// ScheduleConfig projects the settings onto a planner run configuration.
func (s *UserSettings) ScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		SessionDurationMin: s.SessionDurationMin,
		BreakDurationMin:   s.BreakDurationMin,
	}
}
