package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

type SQLiteSettingsRepo struct {
	db db.DBTX
}

func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	var s domain.UserSettings
	var notifications int
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, session_duration_min, break_duration_min, notifications_enabled, bio, academic_goal
		 FROM user_settings WHERE user_id = ?`, userID).
		Scan(&s.UserID, &s.SessionDurationMin, &s.BreakDurationMin, &notifications, &s.Bio, &s.AcademicGoal)
	if err != nil {
		return nil, notFound("user settings", err)
	}
	s.NotificationsEnabled = intToBool(notifications)
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.UserSettings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, session_duration_min, break_duration_min, notifications_enabled, bio, academic_goal, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   session_duration_min = excluded.session_duration_min,
		   break_duration_min = excluded.break_duration_min,
		   notifications_enabled = excluded.notifications_enabled,
		   bio = excluded.bio,
		   academic_goal = excluded.academic_goal,
		   updated_at = excluded.updated_at`,
		s.UserID, s.SessionDurationMin, s.BreakDurationMin, boolToInt(s.NotificationsEnabled),
		s.Bio, s.AcademicGoal, nowUTC())
	if err != nil {
		return fmt.Errorf("upserting user settings: %w", err)
	}
	return nil
}
