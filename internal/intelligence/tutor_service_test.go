package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutor_Summarize_StripsFences(t *testing.T) {
	client := &mockLLMClient{response: "```html\n<ul><li><strong>Point:</strong> x</li></ul>\n```"}

	text, err := NewTutor(client, "").Summarize(context.Background(), "History", "")
	require.NoError(t, err)
	assert.Equal(t, "<ul><li><strong>Point:</strong> x</li></ul>", text)
	assert.Equal(t, llm.TaskSummary, client.last.Task)
	assert.Contains(t, client.last.UserPrompt, `"General concepts"`)
	assert.Contains(t, client.last.UserPrompt, "Summarize in English")
}

func TestTutor_Summarize_Language(t *testing.T) {
	client := &mockLLMClient{response: "<p>ok</p>"}

	_, err := NewTutor(client, "Thai").Summarize(context.Background(), "History", "WWII")
	require.NoError(t, err)
	assert.Contains(t, client.last.UserPrompt, "Summarize in Thai")
	assert.Contains(t, client.last.UserPrompt, `"WWII"`)
}

func TestTutor_Summarize_OracleError(t *testing.T) {
	_, err := NewTutor(&mockLLMClient{err: llm.ErrTimeout}, "").Summarize(context.Background(), "H", "T")

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageOracle, genErr.Stage)
	assert.ErrorIs(t, err, llm.ErrTimeout)
}

const quizResponse = `Here is your quiz:
[
  {"question": "Q1?", "options": ["a","b","c","d"], "correct_index": 1},
  {"question": "Q2?", "options": ["a","b","c"], "correct_index": 0},
  {"question": "Q3?", "options": ["a","b","c","d"], "correct_index": 7},
  {"question": "Q4?", "options": ["a","b","c","d"], "correct_index": 3}, // last one
  {"question": "Q5?", "options": ["a","b","c","d"]},
  {"question": "Q6?", "options": ["a","b","c","d"], "correct_index": null}
]`

func TestTutor_Quiz_DropsInvalidQuestions(t *testing.T) {
	client := &mockLLMClient{response: quizResponse}

	qs, err := NewTutor(client, "").Quiz(context.Background(), "Physics", "Optics")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Q1?", qs[0].Question)
	assert.Equal(t, "Q4?", qs[1].Question)
	assert.Equal(t, 3, qs[1].CorrectIndex)
	assert.Equal(t, llm.TaskQuiz, client.last.Task)
	assert.Contains(t, client.last.UserPrompt, "exactly 5 questions")
}

func TestTutor_Quiz_MissingAnswerIsNeverDefaulted(t *testing.T) {
	client := &mockLLMClient{response: `[{"question":"Q?","options":["a","b","c","d"]},` +
		`{"question":"R?","options":["a","b","c","d"],"correct_index":null}]`}

	qs, err := NewTutor(client, "").Quiz(context.Background(), "Physics", "Optics")
	assert.Nil(t, qs)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
	assert.ErrorContains(t, err, "missing correct_index")
}

func TestTutor_Quiz_TrailingCommaIsInvalid(t *testing.T) {
	client := &mockLLMClient{response: `[{"question":"Q1?","options":["a","b","c","d"],"correct_index":1},]`}

	qs, err := NewTutor(client, "").Quiz(context.Background(), "Physics", "Optics")
	assert.Nil(t, qs)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestTutor_Quiz_TruncatesExtraQuestions(t *testing.T) {
	client := &mockLLMClient{response: `[` +
		`{"question":"1","options":["a","b","c","d"],"correct_index":0},` +
		`{"question":"2","options":["a","b","c","d"],"correct_index":0},` +
		`{"question":"3","options":["a","b","c","d"],"correct_index":0},` +
		`{"question":"4","options":["a","b","c","d"],"correct_index":0},` +
		`{"question":"5","options":["a","b","c","d"],"correct_index":0},` +
		`{"question":"6","options":["a","b","c","d"],"correct_index":0}]`}

	qs, err := NewTutor(client, "").Quiz(context.Background(), "Physics", "")
	require.NoError(t, err)
	assert.Len(t, qs, QuizQuestionCount)
}

func TestTutor_Quiz_NoValidQuestions(t *testing.T) {
	client := &mockLLMClient{response: `[{"question":"","options":[],"correct_index":0}]`}

	_, err := NewTutor(client, "").Quiz(context.Background(), "Physics", "")
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, StageExtract, genErr.Stage)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}
