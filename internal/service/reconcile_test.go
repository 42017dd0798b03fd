package service

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecords(t *testing.T, raw string) []llm.Record {
	t.Helper()
	recs, err := llm.ExtractRecords(raw)
	require.NoError(t, err)
	return recs
}

func TestResolveProposals_CaseInsensitiveMatch(t *testing.T) {
	loc := bangkok(t)
	history := testutil.NewTestSubject("user-1", "history")
	recs := mustRecords(t, `[{"subject_name":"History","start_time":"2025-01-10 09:00","end_time":"2025-01-10 10:00","topic":"WWII"}]`)

	sessions, warnings := resolveProposals(recs, []*domain.Subject{history}, "user-1", loc, testutil.RefNow)

	assert.Empty(t, warnings)
	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, history.ID, s.SubjectID)
	assert.Equal(t, "user-1", s.UserID)
	assert.True(t, s.StartAt.Equal(time.Date(2025, 1, 10, 9, 0, 0, 0, loc)), "start %s", s.StartAt)
	assert.True(t, s.EndAt.Equal(time.Date(2025, 1, 10, 10, 0, 0, 0, loc)), "end %s", s.EndAt)
	assert.Equal(t, loc, s.StartAt.Location())
	assert.Equal(t, "WWII", s.Topic)
	assert.False(t, s.Synced)
	assert.False(t, s.Completed)
	assert.NotEmpty(t, s.ID)
}

func TestResolveProposals_DropsUnknownSubjects(t *testing.T) {
	loc := bangkok(t)
	subjects := []*domain.Subject{testutil.NewTestSubject("user-1", "History of Art")}
	recs := mustRecords(t, `[
		{"subject_name":"Art History","start_time":"2025-01-10 09:00","end_time":"2025-01-10 10:00"},
		{"subject_name":"  HISTORY OF ART ","start_time":"2025-01-10 11:00","end_time":"2025-01-10 12:00"},
		{"start_time":"2025-01-10 13:00","end_time":"2025-01-10 14:00"}
	]`)

	sessions, warnings := resolveProposals(recs, subjects, "user-1", loc, testutil.RefNow)

	require.Len(t, sessions, 1)
	assert.Equal(t, 11, sessions[0].StartAt.Hour())
	require.Len(t, warnings, 2)
	assert.Equal(t, ResolutionWarning{Index: 0, SubjectName: "Art History", Reason: reasonUnknownSubject}, warnings[0])
	assert.Equal(t, 2, warnings[1].Index)
}

func TestResolveProposals_MalformedTimesSkipOnlyThatRecord(t *testing.T) {
	loc := bangkok(t)
	subjects := []*domain.Subject{testutil.NewTestSubject("user-1", "Math")}
	recs := mustRecords(t, `[
		{"subject_name":"Math","start_time":"2025-01-10T09:00:00Z","end_time":"2025-01-10 10:00"},
		{"subject_name":"Math","start_time":"2025-01-10 09:00","end_time":12},
		{"subject_name":"Math","start_time":"2025-01-10 11:00","end_time":"2025-01-10 10:00"},
		{"subject_name":"Math","start_time":"2025-01-11 09:00","end_time":"2025-01-11 09:45"},
		"not an object"
	]`)

	sessions, warnings := resolveProposals(recs, subjects, "user-1", loc, testutil.RefNow)

	require.Len(t, sessions, 1)
	assert.Equal(t, 45, sessions[0].DurationMin())
	assert.Equal(t, DefaultSessionTopic, sessions[0].Topic)

	reasons := make([]string, 0, len(warnings))
	for _, w := range warnings {
		reasons = append(reasons, w.Reason)
	}
	assert.Equal(t, []string{reasonBadStart, reasonBadEnd, reasonEndBeforeStart, reasonNotObject}, reasons)
}

func TestResolveProposals_EarliestSubjectWinsDuplicateNames(t *testing.T) {
	loc := bangkok(t)
	first := testutil.NewTestSubject("user-1", "Chemistry")
	second := testutil.NewTestSubject("user-1", "CHEMISTRY")
	recs := mustRecords(t, `[{"subject_name":"chemistry","start_time":"2025-01-10 09:00","end_time":"2025-01-10 10:00"}]`)

	sessions, _ := resolveProposals(recs, []*domain.Subject{first, second}, "user-1", loc, testutil.RefNow)
	require.Len(t, sessions, 1)
	assert.Equal(t, first.ID, sessions[0].SubjectID)
}

func TestResolveProposals_RecordWithoutFields(t *testing.T) {
	recs := mustRecords(t, "```json\n[{\"a\":1}]\n```")
	require.Len(t, recs, 1)

	sessions, warnings := resolveProposals(recs, []*domain.Subject{testutil.NewTestSubject("u", "Math")}, "u", time.UTC, testutil.RefNow)
	assert.Empty(t, sessions)
	require.Len(t, warnings, 1)
	assert.Equal(t, reasonUnknownSubject, warnings[0].Reason)
}
