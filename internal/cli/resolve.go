package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
)

// currentUser resolves --user by email or id. Without the flag the only
// user is chosen.
func (a *App) currentUser(ctx context.Context) (*app.Container, *domain.User, error) {
	c, err := a.services(ctx)
	if err != nil {
		return nil, nil, err
	}
	ref := strings.TrimSpace(a.userRef)
	if ref != "" {
		u, err := c.Users.GetByEmail(ctx, ref)
		if errors.Is(err, repository.ErrNotFound) {
			u, err = c.Users.GetByID(ctx, ref)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("no user %q", ref)
		}
		return c, u, err
	}

	users, err := c.Users.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	switch len(users) {
	case 0:
		return nil, nil, fmt.Errorf("no users yet: run studyplan user create --email you@example.com")
	case 1:
		return c, users[0], nil
	default:
		return nil, nil, fmt.Errorf("%d users exist: pass --user <email>", len(users))
	}
}

// resolveSessionID accepts a full id or a unique prefix as printed in listings.
func resolveSessionID(ctx context.Context, c *app.Container, userID, ref string) (string, error) {
	if s, err := c.Sessions.Get(ctx, userID, ref); err == nil {
		return s.ID, nil
	}
	all, err := c.Sessions.ListAll(ctx, userID)
	if err != nil {
		return "", err
	}
	return uniquePrefix(ref, len(all), func(i int) string { return all[i].ID })
}

func resolveSubjectID(ctx context.Context, c *app.Container, userID, ref string) (string, error) {
	subjects, err := c.Subjects.List(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, s := range subjects {
		if s.ID == ref || s.MatchesName(ref) {
			return s.ID, nil
		}
	}
	return uniquePrefix(ref, len(subjects), func(i int) string { return subjects[i].ID })
}

func uniquePrefix(ref string, n int, id func(int) string) (string, error) {
	if ref == "" {
		return "", errNotFound
	}
	var match string
	for i := 0; i < n; i++ {
		if strings.HasPrefix(id(i), ref) {
			if match != "" {
				return "", fmt.Errorf("%q matches more than one entry", ref)
			}
			match = id(i)
		}
	}
	if match == "" {
		return "", errNotFound
	}
	return match, nil
}
