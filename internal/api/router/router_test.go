package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/api/handler"
	"github.com/alexanderramin/studyplan/internal/api/middleware"
	"github.com/alexanderramin/studyplan/internal/api/response"
	"github.com/alexanderramin/studyplan/internal/auth"
	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/alexanderramin/studyplan/internal/intelligence"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2025, 1, 9, 14, 30, 0, 0, time.UTC)

type mockLLMClient struct {
	response string
	err      error
}

func (m *mockLLMClient) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "test-model"}, nil
}

func (m *mockLLMClient) Available(context.Context) bool { return m.err == nil }

type apiEnv struct {
	engine *gin.Engine
	client *mockLLMClient
	token  string
	userID string
}

func setupAPI(t *testing.T) *apiEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	users := repository.NewSQLiteUserRepo(database)
	subjects := repository.NewSQLiteSubjectRepo(database)
	availability := repository.NewSQLiteAvailabilityRepo(database)
	sessions := repository.NewSQLiteStudySessionRepo(database)

	user := testutil.NewTestUser()
	require.NoError(t, users.Create(context.Background(), user))

	client := &mockLLMClient{}
	settingsSvc := service.NewSettingsService(repository.NewSQLiteSettingsRepo(database))
	sessionSvc := service.NewSessionService(sessions)
	svc := handler.Services{
		Subjects:     service.NewSubjectService(subjects),
		Availability: service.NewAvailabilityService(availability, uow),
		Settings:     settingsSvc,
		Planner: service.NewPlannerService(subjects, availability, sessions, settingsSvc,
			intelligence.NewSchedulePlanner(client), nil, uow, service.PlannerOptions{HorizonDays: 5}, nil),
		Sessions:  sessionSvc,
		Dashboard: service.NewDashboardService(subjects, sessions),
		Tutor: service.NewTutorService(intelligence.NewTutor(client, ""), sessionSvc,
			repository.NewSQLiteSummaryRepo(database), repository.NewSQLiteQuizResultRepo(database), nil),
	}
	env := handler.Env{
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
		Export:   export.Options{TitlePrefix: "Study: ", ReminderMinutes: 10},
	}

	tokens := auth.NewManager("0123456789abcdef0123", time.Hour)
	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	return &apiEnv{
		engine: Setup(handler.NewHandler(svc, env), tokens, nil),
		client: client,
		token:  token,
		userID: user.ID,
	}
}

func (e *apiEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (e *apiEnv) createSubject(t *testing.T, name string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/subjects", gin.H{"name": name, "difficulty": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var s struct {
		ID string `json:"id"`
	}
	decode(t, w, &s)
	return s.ID
}

func TestHealth_IsPublic(t *testing.T) {
	e := setupAPI(t)
	e.token = ""
	for _, path := range []string{"/health", "/api/v1/health"} {
		w := e.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAuth_RejectsMissingAndBadTokens(t *testing.T) {
	e := setupAPI(t)

	e.token = ""
	w := e.do(t, http.MethodGet, "/api/v1/subjects", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeUnauthorized, decode(t, w, nil).Code)

	e.token = "not-a-jwt"
	w = e.do(t, http.MethodGet, "/api/v1/subjects", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID_Echoed(t *testing.T) {
	e := setupAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))

	w = e.do(t, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestSubjects_CRUD(t *testing.T) {
	e := setupAPI(t)
	id := e.createSubject(t, "History")

	w := e.do(t, http.MethodPut, "/api/v1/subjects/"+id, gin.H{"name": "World History", "difficulty": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodGet, "/api/v1/subjects", nil)
	var list struct {
		List []struct {
			Name       string `json:"name"`
			Difficulty int    `json:"difficulty"`
		} `json:"list"`
	}
	decode(t, w, &list)
	require.Len(t, list.List, 1)
	assert.Equal(t, "World History", list.List[0].Name)
	assert.Equal(t, 2, list.List[0].Difficulty)

	w = e.do(t, http.MethodDelete, "/api/v1/subjects/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodGet, "/api/v1/subjects/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubjects_RejectsInvalidBody(t *testing.T) {
	e := setupAPI(t)
	w := e.do(t, http.MethodPost, "/api/v1/subjects", gin.H{"difficulty": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailability_ReplaceAndList(t *testing.T) {
	e := setupAPI(t)
	w := e.do(t, http.MethodPut, "/api/v1/availability", gin.H{"slots": []gin.H{{"day": 0, "hour": 9}, {"day": 6, "hour": 23}}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		List []struct {
			Label string `json:"label"`
		} `json:"list"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/v1/availability", nil), &out)
	require.Len(t, out.List, 2)
	assert.Equal(t, "Monday: 09:00 - 10:00", out.List[0].Label)
	assert.Equal(t, "Sunday: 23:00 - 00:00", out.List[1].Label)
}

func TestSettings_PartialUpdate(t *testing.T) {
	e := setupAPI(t)
	w := e.do(t, http.MethodPut, "/api/v1/settings", gin.H{"session_duration_min": 45})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var s struct {
		Session int `json:"session_duration_min"`
		Break   int `json:"break_duration_min"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/v1/settings", nil), &s)
	assert.Equal(t, 45, s.Session)
	assert.Equal(t, 10, s.Break)

	w = e.do(t, http.MethodPut, "/api/v1/settings", gin.H{"session_duration_min": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_NoSubjects(t *testing.T) {
	e := setupAPI(t)
	w := e.do(t, http.MethodPost, "/api/v1/schedule/generate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, response.CodeNoSubjects, decode(t, w, nil).Code)
}

func TestGenerate_CreatesSessionsAndSavesSettings(t *testing.T) {
	e := setupAPI(t)
	e.createSubject(t, "History")
	e.client.response = `Here you go: [{"subject_name":"history","start_time":"2025-01-10 09:00","end_time":"2025-01-10 09:45","topic":"WWII"},` +
		`{"subject_name":"Art","start_time":"2025-01-10 11:00","end_time":"2025-01-10 12:00","topic":"x"}]`

	w := e.do(t, http.MethodPost, "/api/v1/schedule/generate", gin.H{"session_duration_min": 45})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result service.ReconcileResult
	decode(t, w, &result)
	require.Len(t, result.Sessions, 1)
	assert.Equal(t, 1, result.Skipped)
	assert.NotContains(t, w.Body.String(), "Art")
	assert.NotContains(t, w.Body.String(), "warnings")

	var s struct {
		Session int `json:"session_duration_min"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/v1/settings", nil), &s)
	assert.Equal(t, 45, s.Session)

	var list struct {
		List []struct {
			Topic string `json:"topic"`
		} `json:"list"`
	}
	decode(t, e.do(t, http.MethodGet, "/api/v1/sessions", nil), &list)
	require.Len(t, list.List, 1)
	assert.Equal(t, "WWII", list.List[0].Topic)
}

func TestGenerate_OracleFailureIsGeneric(t *testing.T) {
	e := setupAPI(t)
	e.createSubject(t, "History")
	e.client.err = fmt.Errorf("%w: dial tcp 10.0.0.1: refused", llm.ErrUnavailable)

	w := e.do(t, http.MethodPost, "/api/v1/schedule/generate", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, response.CodeGenerationFailed, env.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}

func TestGenerate_EmptyResult(t *testing.T) {
	e := setupAPI(t)
	e.createSubject(t, "History")
	e.client.response = `[{"subject_name":"Nope","start_time":"2025-01-10 09:00","end_time":"2025-01-10 10:00"}]`

	w := e.do(t, http.MethodPost, "/api/v1/schedule/generate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var result service.ReconcileResult
	env := decode(t, w, &result)
	assert.Equal(t, response.CodeEmptySchedule, env.Code)
	assert.Equal(t, 1, result.Skipped)
	assert.NotContains(t, w.Body.String(), "Nope")
}

func generateOne(t *testing.T, e *apiEnv) string {
	t.Helper()
	e.createSubject(t, "History")
	e.client.response = `[{"subject_name":"History","start_time":"2025-01-10 09:00","end_time":"2025-01-10 10:00","topic":"WWII"}]`
	w := e.do(t, http.MethodPost, "/api/v1/schedule/generate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result service.ReconcileResult
	decode(t, w, &result)
	require.Len(t, result.Sessions, 1)
	return result.Sessions[0].ID
}

func TestSessions_ToggleWeekAndDashboard(t *testing.T) {
	e := setupAPI(t)
	id := generateOne(t, e)

	w := e.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sess struct {
		Completed bool `json:"completed"`
	}
	decode(t, w, &sess)
	assert.True(t, sess.Completed)

	var week service.Week
	decode(t, e.do(t, http.MethodGet, "/api/v1/sessions/week?date=2025-01-10", nil), &week)
	require.Len(t, week.Days, 7)
	assert.Len(t, week.Days[5].Sessions, 1, "Friday column")

	w = e.do(t, http.MethodGet, "/api/v1/sessions/week?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var dash service.Dashboard
	decode(t, e.do(t, http.MethodGet, "/api/v1/dashboard", nil), &dash)
	assert.Equal(t, 1, dash.SubjectCount)
	assert.Equal(t, 1, dash.SessionCount)
	assert.Equal(t, 100, dash.Readiness)

	w = e.do(t, http.MethodPost, "/api/v1/sessions/missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTutor_SummaryAndQuizFlow(t *testing.T) {
	e := setupAPI(t)
	id := generateOne(t, e)

	e.client.response = "```markdown\n# WWII\nKey dates.\n```"
	var summary struct {
		Content string `json:"content"`
	}
	w := e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/summary", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &summary)
	assert.Equal(t, "# WWII\nKey dates.", summary.Content)

	e.client.response = `[{"question":"When did WWII end?","options":["1918","1939","1945","1950"],"correct_index":2}]`
	var draft service.QuizDraft
	w = e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/quiz", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &draft)
	require.Len(t, draft.Questions, 1)

	w = e.do(t, http.MethodPost, "/api/v1/quizzes", gin.H{"session_id": id, "questions": draft.Questions, "answers": []int{2}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result struct {
		ID         string `json:"id"`
		Score      int    `json:"score"`
		Percentage int    `json:"percentage"`
		Solutions  []struct {
			IsCorrect bool `json:"is_correct"`
		} `json:"solutions"`
	}
	decode(t, w, &result)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 100, result.Percentage)
	require.Len(t, result.Solutions, 1)
	assert.True(t, result.Solutions[0].IsCorrect)

	w = e.do(t, http.MethodGet, "/api/v1/quizzes/"+result.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	e.client.err = errors.New("boom")
	w = e.do(t, http.MethodGet, "/api/v1/sessions/"+id+"/quiz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCalendar_DisabledWithoutGoogle(t *testing.T) {
	e := setupAPI(t)
	w := e.do(t, http.MethodPost, "/api/v1/calendar/sync", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	e.token = ""
	w = e.do(t, http.MethodGet, "/api/v1/calendar/callback?state=s&code=c", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "callback is public but still needs a configured calendar")
}

func TestExport_Downloads(t *testing.T) {
	e := setupAPI(t)
	generateOne(t, e)

	w := e.do(t, http.MethodGet, "/api/v1/export.ics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, w.Body.String(), "Study: History")

	w = e.do(t, http.MethodGet, "/api/v1/export.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "study-schedule.xlsx")
	assert.Equal(t, []byte("PK"), w.Body.Bytes()[:2])
}
