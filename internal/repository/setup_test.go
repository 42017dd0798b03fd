package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	db           *sql.DB
	users        *SQLiteUserRepo
	settings     *SQLiteSettingsRepo
	subjects     *SQLiteSubjectRepo
	availability *SQLiteAvailabilityRepo
	sessions     *SQLiteStudySessionRepo
	credentials  *SQLiteCredentialRepo
	summaries    *SQLiteSummaryRepo
	quizzes      *SQLiteQuizResultRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:           database,
		users:        NewSQLiteUserRepo(database),
		settings:     NewSQLiteSettingsRepo(database),
		subjects:     NewSQLiteSubjectRepo(database),
		availability: NewSQLiteAvailabilityRepo(database),
		sessions:     NewSQLiteStudySessionRepo(database),
		credentials:  NewSQLiteCredentialRepo(database),
		summaries:    NewSQLiteSummaryRepo(database),
		quizzes:      NewSQLiteQuizResultRepo(database),
	}
}

func (r testRepos) seedUser(t *testing.T) *domain.User {
	t.Helper()
	u := testutil.NewTestUser()
	require.NoError(t, r.users.Create(context.Background(), u))
	return u
}

func (r testRepos) seedSubject(t *testing.T, userID, name string, opts ...testutil.SubjectOption) *domain.Subject {
	t.Helper()
	s := testutil.NewTestSubject(userID, name, opts...)
	require.NoError(t, r.subjects.Create(context.Background(), s))
	return s
}
