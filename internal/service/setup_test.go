package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/calendar"
	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db           *sql.DB
	uow          db.UnitOfWork
	users        *repository.SQLiteUserRepo
	settings     *repository.SQLiteSettingsRepo
	subjects     *repository.SQLiteSubjectRepo
	availability *repository.SQLiteAvailabilityRepo
	sessions     *repository.SQLiteStudySessionRepo
	credentials  *repository.SQLiteCredentialRepo
	summaries    *repository.SQLiteSummaryRepo
	quizzes      *repository.SQLiteQuizResultRepo
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testEnv{
		db:           database,
		uow:          testutil.NewTestUoW(database),
		users:        repository.NewSQLiteUserRepo(database),
		settings:     repository.NewSQLiteSettingsRepo(database),
		subjects:     repository.NewSQLiteSubjectRepo(database),
		availability: repository.NewSQLiteAvailabilityRepo(database),
		sessions:     repository.NewSQLiteStudySessionRepo(database),
		credentials:  repository.NewSQLiteCredentialRepo(database),
		summaries:    repository.NewSQLiteSummaryRepo(database),
		quizzes:      repository.NewSQLiteQuizResultRepo(database),
	}
}

func (e testEnv) seedUser(t *testing.T) *domain.User {
	t.Helper()
	u := testutil.NewTestUser()
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e testEnv) seedSubject(t *testing.T, userID, name string, opts ...testutil.SubjectOption) *domain.Subject {
	t.Helper()
	s := testutil.NewTestSubject(userID, name, opts...)
	require.NoError(t, e.subjects.Create(context.Background(), s))
	return s
}

func (e testEnv) seedSessions(t *testing.T, sessions ...*domain.StudySession) {
	t.Helper()
	require.NoError(t, e.sessions.BulkCreate(context.Background(), sessions))
}

// mockLLMClient returns a fixed response and counts calls.
type mockLLMClient struct {
	response string
	err      error
	calls    int
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "test-model"}, nil
}

func (m *mockLLMClient) Available(context.Context) bool { return m.err == nil }

// fakeCalendar records remote calls. Creates fail for the 1-based call
// numbers in failCreate.
type fakeCalendar struct {
	mu          sync.Mutex
	created     []calendar.Event
	deleted     []string
	createCalls int
	failCreate  map[int]error
	deleteErr   error
	failDelete  map[string]error
	refreshErr  error
	refreshed   int
}

func (f *fakeCalendar) CreateEvent(_ context.Context, _ *domain.Credential, ev calendar.Event) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if err, ok := f.failCreate[f.createCalls]; ok {
		return "", err
	}
	f.created = append(f.created, ev)
	return fmt.Sprintf("evt-%d", f.createCalls), nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, _ *domain.Credential, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if err, ok := f.failDelete[eventID]; ok {
		return err
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeCalendar) RefreshCredential(_ context.Context, cred *domain.Credential) (*domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	next := *cred
	next.AccessToken = "refreshed"
	next.Expiry = time.Now().Add(time.Hour).UTC()
	return &next, nil
}

func bangkok(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}
