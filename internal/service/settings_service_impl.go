package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/google/uuid"
)

type settingsService struct {
	repo repository.SettingsRepo
}

func NewSettingsService(repo repository.SettingsRepo) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultSettings(userID), nil
	}
	return settings, err
}

func (s *settingsService) Save(ctx context.Context, settings *domain.UserSettings) error {
	if err := domain.Validate(settings); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return s.repo.Upsert(ctx, settings)
}

type userService struct {
	repo repository.UserRepo
}

func NewUserService(repo repository.UserRepo) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if err := domain.Validate(u); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return s.repo.Create(ctx, u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}
