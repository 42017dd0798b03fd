package domain

import (
	"strings"
	"time"
)

type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// Label returns the human-readable tier name used in prompts and listings.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// ParseDifficulty accepts a tier name or its numeric value.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "easy":
		return DifficultyEasy, true
	case "2", "medium":
		return DifficultyMedium, true
	case "3", "hard":
		return DifficultyHard, true
	}
	return 0, false
}

type Importance int

const (
	ImportanceLow    Importance = 1
	ImportanceMedium Importance = 2
	ImportanceHigh   Importance = 3
)

type Subject struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description,omitempty"`
	Difficulty  Difficulty `json:"difficulty" validate:"min=1,max=3"`
	Importance  Importance `json:"importance" validate:"min=1,max=3"`
	ExamAt      *time.Time `json:"exam_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MatchesName reports whether name equals the subject name ignoring case.
func (s *Subject) MatchesName(name string) bool {
	return strings.EqualFold(s.Name, name)
}
