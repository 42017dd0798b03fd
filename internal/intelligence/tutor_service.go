package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/llm"
)

// Tutor produces study material for a subject and topic.
type Tutor interface {
	Summarize(ctx context.Context, subject, topic string) (string, error)
	// Quiz returns only the well-formed questions the model produced.
	// Failures are *GenerationError values.
	Quiz(ctx context.Context, subject, topic string) ([]domain.QuizQuestion, error)
}

type tutor struct {
	client   llm.LLMClient
	language string
}

// NewTutor creates a Tutor writing in language, English when empty.
func NewTutor(client llm.LLMClient, language string) Tutor {
	if language == "" {
		language = "English"
	}
	return &tutor{client: client, language: language}
}

func (t *tutor) Summarize(ctx context.Context, subject, topic string) (string, error) {
	resp, err := t.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSummary,
		SystemPrompt: tutorSystemPrompt,
		UserPrompt:   BuildSummaryPrompt(subject, topic, t.language),
	})
	if err != nil {
		return "", &GenerationError{Stage: StageOracle, Err: err}
	}
	text := llm.StripCodeFences(resp.Text)
	if text == "" {
		return "", &GenerationError{Stage: StageExtract, Raw: resp.Text, Err: llm.ErrEmptyOutput}
	}
	return text, nil
}

func (t *tutor) Quiz(ctx context.Context, subject, topic string) ([]domain.QuizQuestion, error) {
	resp, err := t.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskQuiz,
		SystemPrompt: tutorSystemPrompt,
		UserPrompt:   BuildQuizPrompt(subject, topic, t.language),
	})
	if err != nil {
		return nil, &GenerationError{Stage: StageOracle, Err: err}
	}

	records, err := llm.ExtractRecords(resp.Text, llm.WithRepair())
	if err != nil {
		return nil, &GenerationError{Stage: StageExtract, Raw: resp.Text, Err: err}
	}

	records, missing := llm.RequireFields(records, "question", "options", "correct_index")
	questions, rejected := llm.DecodeRecords[domain.QuizQuestion](records, domain.QuizQuestion.Validate)
	rejected = append(missing, rejected...)
	if len(questions) == 0 {
		return nil, &GenerationError{
			Stage: StageExtract,
			Raw:   resp.Text,
			Err:   fmt.Errorf("%w: no valid questions: %v", llm.ErrInvalidOutput, errors.Join(rejected...)),
		}
	}
	if len(questions) > QuizQuestionCount {
		questions = questions[:QuizQuestionCount]
	}
	return questions, nil
}
