package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

type SQLiteAvailabilityRepo struct {
	db db.DBTX
}

func NewSQLiteAvailabilityRepo(conn db.DBTX) *SQLiteAvailabilityRepo {
	return &SQLiteAvailabilityRepo{db: conn}
}

func (r *SQLiteAvailabilityRepo) ListByUser(ctx context.Context, userID string) ([]domain.AvailabilitySlot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, day, hour FROM availability_slots WHERE user_id = ? ORDER BY day, hour`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing availability: %w", err)
	}
	defer rows.Close()

	var slots []domain.AvailabilitySlot
	for rows.Next() {
		var s domain.AvailabilitySlot
		var day int
		if err := rows.Scan(&s.ID, &s.UserID, &day, &s.Hour); err != nil {
			return nil, fmt.Errorf("scanning availability slot: %w", err)
		}
		s.Day = domain.Weekday(day)
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability: %w", err)
	}
	return slots, nil
}

func (r *SQLiteAvailabilityRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM availability_slots WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting availability: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) Create(ctx context.Context, slot *domain.AvailabilitySlot) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO availability_slots (id, user_id, day, hour) VALUES (?, ?, ?, ?)`,
		slot.ID, slot.UserID, int(slot.Day), slot.Hour)
	if err != nil {
		return fmt.Errorf("inserting availability slot: %w", err)
	}
	return nil
}
