package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promptstudio/promptstudio-go/internal/model"
	"github.com/promptstudio/promptstudio-go/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrInvalidCategory = errors.New("category must be one of writing, coding, marketing, analysis, creative, other")
	ErrPromptNotFound  = errors.New("prompt not found")
)

// PromptRepository is the persistence contract the service depends on.
// Both repository.PromptRepository and repository.MemoryPromptRepository satisfy it.
type PromptRepository interface {
	Create(ctx context.Context, p *model.Prompt) error
	GetByID(ctx context.Context, id string) (*model.Prompt, error)
	ListByUser(ctx context.Context, userID string) ([]model.Prompt, error)
	ListPublic(ctx context.Context) ([]model.Prompt, error)
	Update(ctx context.Context, p *model.Prompt) error
	Delete(ctx context.Context, id, userID string) error
	IncrementViews(ctx context.Context, id string) error
}

// PromptService handles prompt business logic: validation, ownership and
// timestamps. Concurrent updates are last-write-wins; there is no versioning.
type PromptService struct {
	repo   PromptRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewPromptService creates a new PromptService.
func NewPromptService(repo PromptRepository, logger *slog.Logger) *PromptService {
	return &PromptService{
		repo:   repo,
		logger: logger.With("system", "prompts"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create validates a draft and persists it as a new prompt owned by ownerID.
func (s *PromptService) Create(ctx context.Context, ownerID string, draft model.PromptDraft) (model.Prompt, error) {
	title := strings.TrimSpace(draft.Title)
	content := strings.TrimSpace(draft.Content)
	if title == "" {
		return model.Prompt{}, ErrTitleRequired
	}
	if content == "" {
		return model.Prompt{}, ErrContentRequired
	}
	if !draft.Category.Valid() {
		return model.Prompt{}, ErrInvalidCategory
	}

	now := s.now()
	p := model.Prompt{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       title,
		Description: draft.Description,
		Content:     draft.Content,
		Tags:        model.NormalizeTags(draft.Tags),
		Category:    draft.Category,
		IsPublic:    draft.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return model.Prompt{}, err
	}

	s.logger.Info("prompt created", "id", p.ID, "user_id", ownerID, "public", p.IsPublic)
	return p, nil
}

// Get returns a prompt owned by ownerID. Prompts owned by someone else are
// reported as not found.
func (s *PromptService) Get(ctx context.Context, ownerID, id string) (model.Prompt, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPromptNotFound) {
			return model.Prompt{}, ErrPromptNotFound
		}
		return model.Prompt{}, err
	}
	if p.UserID != ownerID {
		return model.Prompt{}, ErrPromptNotFound
	}
	return *p, nil
}

// Update applies a partial update and returns the persisted prompt.
func (s *PromptService) Update(ctx context.Context, ownerID, id string, patch model.PromptPatch) (model.Prompt, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.Prompt{}, err
	}

	if err := applyPatch(&p, patch); err != nil {
		return model.Prompt{}, err
	}

	p.UpdatedAt = s.now()
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}

	if err := s.repo.Update(ctx, &p); err != nil {
		return model.Prompt{}, err
	}

	persisted, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return model.Prompt{}, err
	}

	s.logger.Info("prompt updated", "id", id, "user_id", ownerID)
	return persisted, nil
}

// Delete removes a prompt owned by ownerID.
func (s *PromptService) Delete(ctx context.Context, ownerID, id string) error {
	err := s.repo.Delete(ctx, id, ownerID)
	if errors.Is(err, repository.ErrPromptNotFound) {
		return ErrPromptNotFound
	}
	if err != nil {
		return err
	}

	s.logger.Info("prompt deleted", "id", id, "user_id", ownerID)
	return nil
}

// ListOwn returns ownerID's prompts, most recently updated first.
func (s *PromptService) ListOwn(ctx context.Context, ownerID string) ([]model.Prompt, error) {
	return s.repo.ListByUser(ctx, ownerID)
}

// ListPublic returns the shared library ordered by views.
func (s *PromptService) ListPublic(ctx context.Context) ([]model.Prompt, error) {
	return s.repo.ListPublic(ctx)
}

// RecordView increments the view counter of a public prompt.
func (s *PromptService) RecordView(ctx context.Context, id string) error {
	err := s.repo.IncrementViews(ctx, id)
	if errors.Is(err, repository.ErrPromptNotFound) {
		return ErrPromptNotFound
	}
	return err
}

func applyPatch(p *model.Prompt, patch model.PromptPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return ErrTitleRequired
		}
		p.Title = title
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return ErrContentRequired
		}
		p.Content = *patch.Content
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return ErrInvalidCategory
		}
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Tags != nil {
		p.Tags = model.NormalizeTags(*patch.Tags)
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
	return nil
}
