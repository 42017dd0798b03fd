package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/intelligence"
	"github.com/alexanderramin/studyplan/internal/repository"
	"go.uber.org/zap"
)

// RemoteDeleter removes a mirrored calendar event on a best-effort basis.
type RemoteDeleter interface {
	DeleteRemote(ctx context.Context, userID, eventID string) bool
}

// PlannerOptions are the process-wide planner defaults.
type PlannerOptions struct {
	HorizonDays int
}

type plannerService struct {
	subjects     repository.SubjectRepo
	availability repository.AvailabilityRepo
	sessions     repository.StudySessionRepo
	settings     SettingsService
	planner      intelligence.SchedulePlanner
	remote       RemoteDeleter
	uow          db.UnitOfWork
	opts         PlannerOptions
	logger       *zap.Logger
	observer     UseCaseObserver
}

// NewPlannerService wires the reconciliation pipeline. remote may be nil when
// no calendar is configured.
func NewPlannerService(
	subjects repository.SubjectRepo,
	availability repository.AvailabilityRepo,
	sessions repository.StudySessionRepo,
	settings SettingsService,
	planner intelligence.SchedulePlanner,
	remote RemoteDeleter,
	uow db.UnitOfWork,
	opts PlannerOptions,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &plannerService{
		subjects:     subjects,
		availability: availability,
		sessions:     sessions,
		settings:     settings,
		planner:      planner,
		remote:       remote,
		uow:          uow,
		opts:         opts,
		logger:       logger,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *plannerService) RunReconciliation(ctx context.Context, req ReconcileRequest) (result *ReconcileResult, err error) {
	fields := map[string]any{"user_id": req.UserID}
	done := observe(ctx, s.observer, "reconcile-schedule", fields)
	defer func() { done(err) }()

	if err := domain.Validate(req.Config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	log := s.logger.With(zap.String("user_id", req.UserID))

	subjects, err := s.subjects.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}
	slots, err := s.availability.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}

	proposal, err := s.planner.Propose(ctx, intelligence.ScheduleInput{
		Now:         req.Now.In(loc),
		Config:      req.Config,
		Subjects:    subjects,
		Slots:       slots,
		HorizonDays: s.opts.HorizonDays,
	})
	if err != nil {
		return nil, s.generationFailure(log, err)
	}

	candidates, warnings := resolveProposals(proposal.Records, subjects, req.UserID, loc, req.Now)
	for _, w := range warnings {
		log.Warn("proposed session dropped",
			zap.Int("index", w.Index),
			zap.String("subject_name", w.SubjectName),
			zap.String("reason", w.Reason),
		)
	}
	result = &ReconcileResult{Warnings: warnings, Skipped: len(warnings), Model: proposal.Model}
	fields["proposed"] = len(proposal.Records)
	fields["accepted"] = len(candidates)

	pending, err := s.sessions.ListPending(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading pending sessions: %w", err)
	}
	var unlinked []string
	for _, p := range pending {
		if p.ExternalEventID == nil || s.remote == nil {
			continue
		}
		if s.remote.DeleteRemote(ctx, req.UserID, *p.ExternalEventID) {
			result.RemoteDeleted++
			unlinked = append(unlinked, p.ID)
		} else {
			result.RemoteFailed++
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteStudySessionRepo(tx)
		n, err := txSessions.DeletePending(ctx, req.UserID)
		if err != nil {
			return err
		}
		result.Replaced = n
		return txSessions.BulkCreate(ctx, candidates)
	})
	if err != nil {
		s.unlink(ctx, log, unlinked)
		return nil, fmt.Errorf("replacing pending sessions: %w", err)
	}

	if len(candidates) == 0 {
		return result, ErrEmptyResult
	}
	result.Sessions = candidates
	return result, nil
}

// unlink marks sessions whose remote events are already gone as unsynced,
// so a later push recreates the events when the replace did not happen.
func (s *plannerService) unlink(ctx context.Context, log *zap.Logger, ids []string) {
	for _, id := range ids {
		if err := s.sessions.ClearSync(ctx, id); err != nil {
			log.Error("clearing sync state", zap.String("session_id", id), zap.Error(err))
		}
	}
}

func (s *plannerService) generationFailure(log *zap.Logger, err error) error {
	var genErr *intelligence.GenerationError
	if errors.As(err, &genErr) && genErr.Stage == intelligence.StageExtract {
		log.Error("schedule extraction failed", zap.Error(err), zap.String("raw", genErr.Raw))
		return fmt.Errorf("%w: %w", ErrExtractionFailure, err)
	}
	log.Error("schedule oracle call failed", zap.Error(err))
	return fmt.Errorf("%w: %w", ErrOracleFailure, err)
}

func (s *plannerService) GenerateWithSettings(ctx context.Context, settings *domain.UserSettings, now time.Time, loc *time.Location) (*ReconcileResult, error) {
	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return s.RunReconciliation(ctx, ReconcileRequest{
		UserID:   settings.UserID,
		Config:   settings.ScheduleConfig(),
		Now:      now,
		Location: loc,
	})
}
