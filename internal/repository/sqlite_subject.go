package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

type SQLiteSubjectRepo struct {
	db db.DBTX
}

func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

const subjectColumns = `id, user_id, name, description, difficulty, importance, exam_at, created_at`

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subjects (`+subjectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name, s.Description, int(s.Difficulty), int(s.Importance),
		nullableTimeToString(s.ExamAt), formatTime(s.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = ?`, id)
	return scanSubject(row)
}

func (r *SQLiteSubjectRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()
	return scanSubjects(rows)
}

func (r *SQLiteSubjectRepo) ListUpcomingExams(ctx context.Context, userID string, since time.Time) ([]*domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects
		 WHERE user_id = ? AND exam_at IS NOT NULL AND exam_at >= ?
		 ORDER BY exam_at, id`, userID, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing upcoming exams: %w", err)
	}
	defer rows.Close()
	return scanSubjects(rows)
}

func (r *SQLiteSubjectRepo) Update(ctx context.Context, s *domain.Subject) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subjects SET name = ?, description = ?, difficulty = ?, importance = ?, exam_at = ?
		 WHERE id = ?`,
		s.Name, s.Description, int(s.Difficulty), int(s.Importance), nullableTimeToString(s.ExamAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating subject: %w", err)
	}
	return requireAffected(res, "subject")
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return requireAffected(res, "subject")
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var s domain.Subject
	var difficulty, importance int
	var examAt sql.NullString
	var createdAt string
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &difficulty, &importance, &examAt, &createdAt)
	if err != nil {
		return nil, notFound("subject", err)
	}
	s.Difficulty = domain.Difficulty(difficulty)
	s.Importance = domain.Importance(importance)
	s.ExamAt = parseNullableTime(examAt)
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSubjects(rows *sql.Rows) ([]*domain.Subject, error) {
	var subjects []*domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
