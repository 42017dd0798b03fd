package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/testutil"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

const baseYAML = `
db:
  path: ":memory:"
planner:
  timezone: UTC
`

func TestWire_WithoutOracleKey(t *testing.T) {
	ctx := context.Background()
	c, err := Wire(ctx, testutil.NewTestDB(t), loadConfig(t, baseYAML), nil)
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Sync)
	assert.Nil(t, c.Connector)
	assert.Nil(t, c.Tokens)

	user := testutil.NewTestUser()
	require.NoError(t, c.Users.Create(ctx, user))
	require.NoError(t, c.Subjects.Create(ctx, testutil.NewTestSubject(user.ID, "Math")))

	_, err = c.Planner.RunReconciliation(ctx, service.ReconcileRequest{
		UserID:   user.ID,
		Config:   domain.ScheduleConfig{SessionDurationMin: 60, BreakDurationMin: 10},
		Now:      testutil.RefNow,
		Location: time.UTC,
	})
	assert.ErrorIs(t, err, service.ErrOracleFailure)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestWire_GoogleWithRedisStates(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := loadConfig(t, baseYAML+`
google:
  client_id: id
  client_secret: secret
redis:
  addr: `+mr.Addr()+`
auth:
  jwt_secret: 0123456789abcdef
`)

	ctx := context.Background()
	c, err := Wire(ctx, testutil.NewTestDB(t), cfg, nil)
	require.NoError(t, err)

	require.NotNil(t, c.Sync)
	require.NotNil(t, c.Connector)
	require.NotNil(t, c.Tokens)

	url, err := c.Connector.AuthURL(ctx, "user-1")
	require.NoError(t, err)
	assert.Contains(t, url, "state=")
	assert.Len(t, mr.Keys(), 1)

	require.NoError(t, c.Close())
}

func TestWire_RedisUnreachable(t *testing.T) {
	cfg := loadConfig(t, baseYAML+`
google:
  client_id: id
  client_secret: secret
redis:
  addr: 127.0.0.1:1
`)
	_, err := Wire(context.Background(), testutil.NewTestDB(t), cfg, nil)
	assert.ErrorContains(t, err, "connecting to redis")
}

func TestWire_Options(t *testing.T) {
	fixed := func() time.Time { return testutil.RefNow }
	c, err := Wire(context.Background(), testutil.NewTestDB(t), loadConfig(t, baseYAML), nil,
		WithClock(fixed), WithOracle(unconfiguredClient{err: assert.AnError}))
	require.NoError(t, err)
	assert.Equal(t, testutil.RefNow, c.Now())
}
