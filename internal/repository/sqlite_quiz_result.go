package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
)

type SQLiteQuizResultRepo struct {
	db db.DBTX
}

func NewSQLiteQuizResultRepo(conn db.DBTX) *SQLiteQuizResultRepo {
	return &SQLiteQuizResultRepo{db: conn}
}

const quizResultColumns = `id, user_id, session_id, questions_json, answers_json, score, total_questions, created_at`

func (r *SQLiteQuizResultRepo) Create(ctx context.Context, q *domain.QuizResult) error {
	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("encoding quiz questions: %w", err)
	}
	answers := q.UserAnswers
	if answers == nil {
		answers = []*int{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encoding quiz answers: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_results (`+quizResultColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.UserID, q.SessionID, string(questions), string(answersJSON),
		q.Score, q.TotalQuestions, formatTime(q.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting quiz result: %w", err)
	}
	return nil
}

func (r *SQLiteQuizResultRepo) GetByID(ctx context.Context, id string) (*domain.QuizResult, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+quizResultColumns+` FROM quiz_results WHERE id = ?`, id)
	return scanQuizResult(row)
}

func (r *SQLiteQuizResultRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.QuizResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+quizResultColumns+` FROM quiz_results WHERE session_id = ? ORDER BY created_at DESC, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing quiz results: %w", err)
	}
	defer rows.Close()

	var out []*domain.QuizResult
	for rows.Next() {
		q, err := scanQuizResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quiz results: %w", err)
	}
	return out, nil
}

func scanQuizResult(row rowScanner) (*domain.QuizResult, error) {
	var q domain.QuizResult
	var questions, answers, createdAt string
	err := row.Scan(&q.ID, &q.UserID, &q.SessionID, &questions, &answers, &q.Score, &q.TotalQuestions, &createdAt)
	if err != nil {
		return nil, notFound("quiz result", err)
	}
	if err := json.Unmarshal([]byte(questions), &q.Questions); err != nil {
		return nil, fmt.Errorf("decoding quiz questions: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &q.UserAnswers); err != nil {
		return nil, fmt.Errorf("decoding quiz answers: %w", err)
	}
	if q.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &q, nil
}
