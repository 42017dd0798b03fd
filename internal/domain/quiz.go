package domain

import (
	"fmt"
	"strings"
	"time"
)

const QuizOptionCount = 4

type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Validate checks the question has text, four options and an in-range answer.
func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != QuizOptionCount {
		return fmt.Errorf("question has %d options, want %d", len(q.Options), QuizOptionCount)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= QuizOptionCount {
		return fmt.Errorf("correct_index %d out of range", q.CorrectIndex)
	}
	return nil
}

type QuizResult struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	SessionID      string         `json:"session_id"`
	Questions      []QuizQuestion `json:"questions"`
	UserAnswers    []*int         `json:"user_answers"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Percentage returns the score as a whole percentage of the question count.
func (r *QuizResult) Percentage() int {
	if r.TotalQuestions == 0 {
		return 0
	}
	return r.Score * 100 / r.TotalQuestions
}

// QuizSolution pairs a question with the user's answer for review.
type QuizSolution struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	UserIndex    *int     `json:"user_index"`
	IsCorrect    bool     `json:"is_correct"`
}

func (r *QuizResult) Solutions() []QuizSolution {
	out := make([]QuizSolution, 0, len(r.Questions))
	for i, q := range r.Questions {
		var ans *int
		if i < len(r.UserAnswers) {
			ans = r.UserAnswers[i]
		}
		out = append(out, QuizSolution{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			UserIndex:    ans,
			IsCorrect:    ans != nil && *ans == q.CorrectIndex,
		})
	}
	return out
}

// ScoreAnswers counts answers that match the question's correct index.
// Answers are paired positionally; missing or nil answers score zero.
func ScoreAnswers(questions []QuizQuestion, answers []*int) int {
	score := 0
	for i, q := range questions {
		if i >= len(answers) || answers[i] == nil {
			continue
		}
		if *answers[i] == q.CorrectIndex {
			score++
		}
	}
	return score
}
