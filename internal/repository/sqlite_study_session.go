package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

type SQLiteStudySessionRepo struct {
	db db.DBTX
}

func NewSQLiteStudySessionRepo(conn db.DBTX) *SQLiteStudySessionRepo {
	return &SQLiteStudySessionRepo{db: conn}
}

const sessionSelect = `SELECT s.id, s.user_id, s.subject_id, sub.name, s.start_at, s.end_at, s.topic,
		s.completed, s.synced, s.external_event_id, s.created_at
	FROM study_sessions s
	JOIN subjects sub ON sub.id = s.subject_id`

// bulkInsertChunk keeps each INSERT under SQLite's bound-parameter limit.
const bulkInsertChunk = 50

func (r *SQLiteStudySessionRepo) BulkCreate(ctx context.Context, sessions []*domain.StudySession) error {
	for start := 0; start < len(sessions); start += bulkInsertChunk {
		end := min(start+bulkInsertChunk, len(sessions))
		chunk := sessions[start:end]

		var sb strings.Builder
		sb.WriteString(`INSERT INTO study_sessions
			(id, user_id, subject_id, start_at, end_at, topic, completed, synced, external_event_id, created_at)
			VALUES `)
		args := make([]any, 0, len(chunk)*10)
		for i, s := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(" + placeholders(10) + ")")
			args = append(args,
				s.ID, s.UserID, s.SubjectID, formatTime(s.StartAt), formatTime(s.EndAt), s.Topic,
				boolToInt(s.Completed), boolToInt(s.Synced), nullableString(s.ExternalEventID),
				formatTime(s.CreatedAt))
		}
		if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("bulk inserting study sessions: %w", err)
		}
	}
	return nil
}

func (r *SQLiteStudySessionRepo) GetByID(ctx context.Context, id string) (*domain.StudySession, error) {
	row := r.db.QueryRowContext(ctx, sessionSelect+` WHERE s.id = ?`, id)
	return scanStudySession(row)
}

func (r *SQLiteStudySessionRepo) ListByUser(ctx context.Context, userID string) ([]*domain.StudySession, error) {
	return r.query(ctx, "listing study sessions",
		sessionSelect+` WHERE s.user_id = ? ORDER BY s.start_at, s.id`, userID)
}

// ListInRange returns sessions starting in [from, to).
func (r *SQLiteStudySessionRepo) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.StudySession, error) {
	return r.query(ctx, "listing study sessions in range",
		sessionSelect+` WHERE s.user_id = ? AND s.start_at >= ? AND s.start_at < ? ORDER BY s.start_at, s.id`,
		userID, formatTime(from), formatTime(to))
}

func (r *SQLiteStudySessionRepo) ListUpcoming(ctx context.Context, userID string, since time.Time, limit int) ([]*domain.StudySession, error) {
	return r.query(ctx, "listing upcoming study sessions",
		sessionSelect+` WHERE s.user_id = ? AND s.start_at >= ? ORDER BY s.start_at, s.id LIMIT ?`,
		userID, formatTime(since), limit)
}

// ListPending returns the user's non-completed sessions.
func (r *SQLiteStudySessionRepo) ListPending(ctx context.Context, userID string) ([]*domain.StudySession, error) {
	return r.query(ctx, "listing pending study sessions",
		sessionSelect+` WHERE s.user_id = ? AND s.completed = 0 ORDER BY s.start_at, s.id`, userID)
}

func (r *SQLiteStudySessionRepo) ListUnsynced(ctx context.Context, userID string) ([]*domain.StudySession, error) {
	return r.query(ctx, "listing unsynced study sessions",
		sessionSelect+` WHERE s.user_id = ? AND s.synced = 0 ORDER BY s.start_at, s.id`, userID)
}

// DeletePending removes every non-completed session of the user and
// returns how many rows were deleted.
func (r *SQLiteStudySessionRepo) DeletePending(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE user_id = ? AND completed = 0`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting pending study sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted study sessions: %w", err)
	}
	return n, nil
}

func (r *SQLiteStudySessionRepo) MarkSynced(ctx context.Context, id, externalEventID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE study_sessions SET synced = 1, external_event_id = ? WHERE id = ?`, externalEventID, id)
	if err != nil {
		return fmt.Errorf("marking study session synced: %w", err)
	}
	return requireAffected(res, "study session")
}

func (r *SQLiteStudySessionRepo) ClearSync(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE study_sessions SET synced = 0, external_event_id = NULL WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("clearing study session sync: %w", err)
	}
	return requireAffected(res, "study session")
}

func (r *SQLiteStudySessionRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE study_sessions SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("updating study session completion: %w", err)
	}
	return requireAffected(res, "study session")
}

func (r *SQLiteStudySessionRepo) CountByUser(ctx context.Context, userID string) (int, int, error) {
	var total, completed int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM study_sessions WHERE user_id = ?`, userID).
		Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("counting study sessions: %w", err)
	}
	return total, completed, nil
}

func (r *SQLiteStudySessionRepo) query(ctx context.Context, what, query string, args ...any) ([]*domain.StudySession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var sessions []*domain.StudySession
	for rows.Next() {
		s, err := scanStudySession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study sessions: %w", err)
	}
	return sessions, nil
}

func scanStudySession(row rowScanner) (*domain.StudySession, error) {
	var s domain.StudySession
	var startAt, endAt, createdAt string
	var completed, synced int
	var eventID sql.NullString
	err := row.Scan(&s.ID, &s.UserID, &s.SubjectID, &s.SubjectName, &startAt, &endAt, &s.Topic,
		&completed, &synced, &eventID, &createdAt)
	if err != nil {
		return nil, notFound("study session", err)
	}
	s.Completed = intToBool(completed)
	s.Synced = intToBool(synced)
	if eventID.Valid {
		id := eventID.String
		s.ExternalEventID = &id
	}
	if s.StartAt, err = parseTime("start_at", startAt); err != nil {
		return nil, err
	}
	if s.EndAt, err = parseTime("end_at", endAt); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &s, nil
}
