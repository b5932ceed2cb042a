package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/promptstudio/promptstudio-go/internal/metrics"
	"github.com/promptstudio/promptstudio-go/internal/model"
	"github.com/promptstudio/promptstudio-go/internal/repository"
)

// ProfileRepository is the persistence contract for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	GetByID(ctx context.Context, id string) (*model.Profile, error)
}

// ProfileService creates profiles lazily the first time an identity is seen.
type ProfileService struct {
	repo   ProfileRepository
	logger *slog.Logger
	group  singleflight.Group
	// known caches identities whose profile is already stored.
	known sync.Map
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger.With("system", "profiles"),
	}
}

// EnsureProfile returns the identity's profile, creating it on first use.
// Concurrent first calls for the same identity share a single creation.
func (s *ProfileService) EnsureProfile(ctx context.Context, id model.Identity) (model.Profile, error) {
	if p, ok := s.known.Load(id.ID); ok {
		return p.(model.Profile), nil
	}

	v, err, _ := s.group.Do(id.ID, func() (any, error) {
		p, err := s.repo.GetByID(ctx, id.ID)
		if err == nil {
			return *p, nil
		}
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return nil, err
		}

		profile := model.Profile{
			ID:           id.ID,
			Email:        id.Email,
			DisplayName:  id.DisplayName,
			AvatarURL:    id.AvatarURL,
			Subscription: model.DefaultSubscription,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, &profile); err != nil {
			if !errors.Is(err, repository.ErrDuplicateProfile) {
				return nil, err
			}
			// Another instance won the race.
			p, err := s.repo.GetByID(ctx, id.ID)
			if err != nil {
				return nil, err
			}
			return *p, nil
		}

		metrics.RecordProfileCreated()
		s.logger.Info("profile created", "user_id", id.ID, "email", id.Email)
		return profile, nil
	})
	if err != nil {
		return model.Profile{}, err
	}

	profile := v.(model.Profile)
	s.known.Store(id.ID, profile)
	return profile, nil
}
