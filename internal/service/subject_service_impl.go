package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/google/uuid"
)

type subjectService struct {
	repo repository.SubjectRepo
}

func NewSubjectService(repo repository.SubjectRepo) SubjectService {
	return &subjectService{repo: repo}
}

func (s *subjectService) Create(ctx context.Context, subject *domain.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.New().String()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	if subject.Difficulty == 0 {
		subject.Difficulty = domain.DifficultyMedium
	}
	if subject.Importance == 0 {
		subject.Importance = domain.ImportanceMedium
	}
	if err := domain.Validate(subject); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return s.repo.Create(ctx, subject)
}

func (s *subjectService) Get(ctx context.Context, userID, id string) (*domain.Subject, error) {
	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject.UserID != userID {
		return nil, ErrForbidden
	}
	return subject, nil
}

func (s *subjectService) List(ctx context.Context, userID string) ([]*domain.Subject, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *subjectService) Update(ctx context.Context, subject *domain.Subject) error {
	existing, err := s.Get(ctx, subject.UserID, subject.ID)
	if err != nil {
		return err
	}
	subject.CreatedAt = existing.CreatedAt
	if err := domain.Validate(subject); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return s.repo.Update(ctx, subject)
}

// Delete removes the subject; its sessions go with it.
func (s *subjectService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

type availabilityService struct {
	repo repository.AvailabilityRepo
	uow  db.UnitOfWork
}

func NewAvailabilityService(repo repository.AvailabilityRepo, uow db.UnitOfWork) AvailabilityService {
	return &availabilityService{repo: repo, uow: uow}
}

func (s *availabilityService) List(ctx context.Context, userID string) ([]domain.AvailabilitySlot, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *availabilityService) Replace(ctx context.Context, userID string, slots []domain.AvailabilitySlot) error {
	seen := make(map[[2]int]bool, len(slots))
	unique := make([]domain.AvailabilitySlot, 0, len(slots))
	for _, slot := range slots {
		if err := domain.Validate(slot); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
		}
		key := [2]int{int(slot.Day), slot.Hour}
		if seen[key] {
			continue
		}
		seen[key] = true
		slot.ID = uuid.New().String()
		slot.UserID = userID
		unique = append(unique, slot)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSlots := repository.NewSQLiteAvailabilityRepo(tx)
		if err := txSlots.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		for i := range unique {
			if err := txSlots.Create(ctx, &unique[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
