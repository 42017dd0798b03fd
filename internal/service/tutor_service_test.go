package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/intelligence"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTutor(env testEnv, client llm.LLMClient) TutorService {
	return NewTutorService(intelligence.NewTutor(client, ""), NewSessionService(env.sessions), env.summaries, env.quizzes, nil)
}

func intPtr(v int) *int { return &v }

func TestSessionSummary_GeneratesOnce(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	sess := testutil.NewTestStudySession(env.seedSubject(t, user.ID, "Biology"), testutil.WithTopic("Cells"))
	env.seedSessions(t, sess)
	client := &mockLLMClient{response: "```html\n<ul><li>Cells</li></ul>\n```"}
	svc := newTestTutor(env, client)

	first, err := svc.SessionSummary(ctx, user.ID, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>Cells</li></ul>", first.Content)
	assert.Equal(t, "Biology", first.SubjectName)

	client.response = "<p>different</p>"
	second, err := svc.SessionSummary(ctx, user.ID, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, 1, client.calls)

	list, err := svc.ListSummaries(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSessionSummary_FailureIsNotStored(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	sess := testutil.NewTestStudySession(env.seedSubject(t, user.ID, "Biology"))
	env.seedSessions(t, sess)

	_, err := newTestTutor(env, &mockLLMClient{err: llm.ErrUnavailable}).SessionSummary(ctx, user.ID, sess.ID)
	assert.ErrorIs(t, err, ErrSummaryUnavailable)

	list, err := env.summaries.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSessionSummary_OtherUsersSession(t *testing.T) {
	env := setupEnv(t)
	owner := env.seedUser(t)
	other := env.seedUser(t)
	sess := testutil.NewTestStudySession(env.seedSubject(t, owner.ID, "Biology"))
	env.seedSessions(t, sess)

	_, err := newTestTutor(env, &mockLLMClient{response: "x"}).SessionSummary(context.Background(), other.ID, sess.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGenerateQuiz_Unavailable(t *testing.T) {
	env := setupEnv(t)
	_, err := newTestTutor(env, &mockLLMClient{response: "no quiz today"}).GenerateQuiz(context.Background(), "Physics", "")
	assert.ErrorIs(t, err, ErrQuizUnavailable)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestSessionQuizAndSubmit(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	sess := testutil.NewTestStudySession(env.seedSubject(t, user.ID, "Physics"), testutil.WithTopic("Optics"))
	env.seedSessions(t, sess)
	client := &mockLLMClient{response: `[
		{"question":"Q1","options":["a","b","c","d"],"correct_index":0},
		{"question":"Q2","options":["a","b","c","d"],"correct_index":1},
		{"question":"Q3","options":["a","b","c","d"],"correct_index":2}]`}
	svc := newTestTutor(env, client)

	draft, err := svc.SessionQuiz(ctx, user.ID, sess.ID)
	require.NoError(t, err)
	require.Len(t, draft.Questions, 3)
	assert.Equal(t, sess.ID, draft.Session.ID)

	result, err := svc.SubmitQuiz(ctx, user.ID, sess.ID, draft.Questions, []*int{intPtr(0), intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 33, result.Percentage())
	require.Len(t, result.UserAnswers, 3)
	assert.Nil(t, result.UserAnswers[2])

	got, err := svc.GetResult(ctx, user.ID, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Score, got.Score)
	solutions := got.Solutions()
	assert.True(t, solutions[0].IsCorrect)
	assert.False(t, solutions[1].IsCorrect)
	assert.Nil(t, solutions[2].UserIndex)

	other := env.seedUser(t)
	_, err = svc.GetResult(ctx, other.ID, result.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitQuiz_RejectsMalformedQuestions(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	sess := testutil.NewTestStudySession(env.seedSubject(t, user.ID, "Physics"))
	env.seedSessions(t, sess)
	svc := newTestTutor(env, &mockLLMClient{})

	_, err := svc.SubmitQuiz(ctx, user.ID, sess.ID, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidSettings)

	bad := []domain.QuizQuestion{{Question: "Q", Options: []string{"a"}, CorrectIndex: 0}}
	_, err = svc.SubmitQuiz(ctx, user.ID, sess.ID, bad, []*int{intPtr(0)})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	extra := []*int{intPtr(0), intPtr(1), intPtr(2), intPtr(3), intPtr(0), intPtr(1)}
	result, err := svc.SubmitQuiz(ctx, user.ID, sess.ID, testutil.NewTestQuestions(5), extra)
	require.NoError(t, err)
	assert.Len(t, result.UserAnswers, 5)
	assert.Equal(t, 5, result.Score)
}
