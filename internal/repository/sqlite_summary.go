package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

type SQLiteSummaryRepo struct {
	db db.DBTX
}

func NewSQLiteSummaryRepo(conn db.DBTX) *SQLiteSummaryRepo {
	return &SQLiteSummaryRepo{db: conn}
}

const summarySelect = `SELECT m.id, m.user_id, m.session_id, m.subject_id, sub.name, m.content, m.created_at
	FROM study_summaries m
	JOIN subjects sub ON sub.id = m.subject_id`

func (r *SQLiteSummaryRepo) Create(ctx context.Context, s *domain.StudySummary) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO study_summaries (id, user_id, session_id, subject_id, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.SessionID, s.SubjectID, s.Content, formatTime(s.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting study summary: %w", err)
	}
	return nil
}

func (r *SQLiteSummaryRepo) GetBySession(ctx context.Context, sessionID string) (*domain.StudySummary, error) {
	row := r.db.QueryRowContext(ctx, summarySelect+` WHERE m.session_id = ?`, sessionID)
	return scanSummary(row)
}

func (r *SQLiteSummaryRepo) ListByUser(ctx context.Context, userID string) ([]*domain.StudySummary, error) {
	rows, err := r.db.QueryContext(ctx,
		summarySelect+` WHERE m.user_id = ? ORDER BY m.created_at DESC, m.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing study summaries: %w", err)
	}
	defer rows.Close()

	var out []*domain.StudySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study summaries: %w", err)
	}
	return out, nil
}

func scanSummary(row rowScanner) (*domain.StudySummary, error) {
	var s domain.StudySummary
	var createdAt string
	err := row.Scan(&s.ID, &s.UserID, &s.SessionID, &s.SubjectID, &s.SubjectName, &s.Content, &createdAt)
	if err != nil {
		return nil, notFound("study summary", err)
	}
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &s, nil
}
