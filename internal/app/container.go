package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/auth"
	"github.com/alexanderramin/studyplan/internal/calendar"
	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/intelligence"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/service"
	"go.uber.org/zap"
)

// Container holds the wired services shared by the CLI and the HTTP server.
// Sync and Connector are nil when Google Calendar is not
// configured; Tokens is nil without a usable JWT secret.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Location *time.Location
	Now      func() time.Time

	Users        service.UserService
	Settings     service.SettingsService
	Subjects     service.SubjectService
	Availability service.AvailabilityService
	Planner      service.PlannerService
	Sessions     service.SessionService
	Dashboard    service.DashboardService
	Tutor        service.TutorService
	Sync         service.SyncService
	Connector    service.CalendarConnector
	Tokens       *auth.Manager

	closers []func() error
}

// Build opens the database and wires every service from cfg.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	c, err := Wire(ctx, database, cfg, logger)
	if err != nil {
		database.Close()
		return nil, err
	}
	c.closers = append(c.closers, database.Close)
	return c, nil
}

// Option adjusts wiring.
type Option func(*wiring)

type wiring struct {
	oracle llm.LLMClient
	now    func() time.Time
}

// WithOracle replaces the completion client built from the llm section.
func WithOracle(client llm.LLMClient) Option {
	return func(w *wiring) { w.oracle = client }
}

// WithClock replaces time.Now for every service and command.
func WithClock(now func() time.Time) Option {
	return func(w *wiring) { w.now = now }
}

// Wire builds the services over an open database. An unusable oracle
// configuration is not fatal: commands that never call the oracle still work,
// and those that do report the configuration error.
func Wire(ctx context.Context, database *sql.DB, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := wiring{now: time.Now}
	for _, opt := range opts {
		opt(&w)
	}
	loc := cfg.Location()
	c := &Container{Config: cfg, Logger: logger, Location: loc, Now: w.now}
	observer := service.NewLogUseCaseObserver(logger)

	uow := db.NewSQLiteUnitOfWork(database)
	users := repository.NewSQLiteUserRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	subjects := repository.NewSQLiteSubjectRepo(database)
	availability := repository.NewSQLiteAvailabilityRepo(database)
	sessions := repository.NewSQLiteStudySessionRepo(database)
	credentials := repository.NewSQLiteCredentialRepo(database)

	client := w.oracle
	if client == nil {
		client = newOracle(ctx, cfg, logger)
	}

	c.Users = service.NewUserService(users)
	c.Settings = service.NewSettingsService(settingsRepo)
	c.Subjects = service.NewSubjectService(subjects)
	c.Availability = service.NewAvailabilityService(availability, uow)
	c.Sessions = service.NewSessionService(sessions)
	c.Dashboard = service.NewDashboardService(subjects, sessions)
	c.Tutor = service.NewTutorService(
		intelligence.NewTutor(client, cfg.Tutor.Language),
		c.Sessions,
		repository.NewSQLiteSummaryRepo(database),
		repository.NewSQLiteQuizResultRepo(database),
		logger, observer,
	)

	var remote service.RemoteDeleter
	if cfg.GoogleEnabled() {
		google := calendar.NewGoogleClient(cfg.GoogleClientConfig(), loc)
		states, closeStates, err := newStateStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if closeStates != nil {
			c.closers = append(c.closers, closeStates)
		}
		c.Sync = service.NewSyncService(credentials, sessions, google, cfg.EventOptions(), loc, logger, observer)
		c.Connector = service.NewCalendarConnector(google, states, credentials, nil)
		remote = c.Sync
	}

	c.Planner = service.NewPlannerService(
		subjects, availability, sessions, c.Settings,
		intelligence.NewSchedulePlanner(client),
		remote, uow,
		service.PlannerOptions{HorizonDays: cfg.Planner.HorizonDays},
		logger, observer,
	)

	if len(cfg.Auth.JWTSecret) >= config.MinJWTSecretLen && cfg.Auth.TokenTTL > 0 {
		c.Tokens = auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}
	return c, nil
}

func newOracle(ctx context.Context, cfg *config.Config, logger *zap.Logger) llm.LLMClient {
	llmCfg := cfg.LLMClientConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, err := llm.NewClient(ctx, llmCfg, observer)
	if err != nil {
		logger.Warn("completion oracle unavailable", zap.Error(err))
		return unconfiguredClient{err: err}
	}
	return client
}

// newStateStore prefers Redis so OAuth states survive restarts and are
// shared between server replicas.
func newStateStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (calendar.StateStore, func() error, error) {
	if cfg.Redis.Addr == "" {
		return calendar.NewMemoryStateStore(), nil, nil
	}
	store, err := calendar.NewRedisStateStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return store, store.Close, nil
}

// Close releases the database and any external connections.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// unconfiguredClient stands in for the oracle when its configuration is unusable.
type unconfiguredClient struct {
	err error
}

func (u unconfiguredClient) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return nil, fmt.Errorf("%w: %w", llm.ErrUnavailable, u.err)
}

func (unconfiguredClient) Available(context.Context) bool { return false }
