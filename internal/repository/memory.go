package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

// MemoryPromptRepository is the in-process store used with DATABASE_DRIVER=memory.
// It mirrors PromptRepository's ordering and error behaviour.
type MemoryPromptRepository struct {
	mu      sync.RWMutex
	prompts map[string]model.Prompt
	// order records insertion so ties sort the same way on every call.
	order []string
}

func NewMemoryPromptRepository() *MemoryPromptRepository {
	return &MemoryPromptRepository{prompts: make(map[string]model.Prompt)}
}

func (r *MemoryPromptRepository) Create(_ context.Context, p *model.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prompts[p.ID] = clonePrompt(*p)
	r.order = append(r.order, p.ID)
	return nil
}

func (r *MemoryPromptRepository) GetByID(_ context.Context, id string) (*model.Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.prompts[id]
	if !ok {
		return nil, ErrPromptNotFound
	}
	out := clonePrompt(p)
	return &out, nil
}

func (r *MemoryPromptRepository) ListByUser(_ context.Context, userID string) ([]model.Prompt, error) {
	out := r.collect(func(p model.Prompt) bool { return p.UserID == userID })
	slices.SortStableFunc(out, func(a, b model.Prompt) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}

func (r *MemoryPromptRepository) ListPublic(_ context.Context) ([]model.Prompt, error) {
	out := r.collect(func(p model.Prompt) bool { return p.IsPublic })
	slices.SortStableFunc(out, func(a, b model.Prompt) int {
		switch {
		case a.Views > b.Views:
			return -1
		case a.Views < b.Views:
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *MemoryPromptRepository) Update(_ context.Context, p *model.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.prompts[p.ID]
	if !ok {
		return nil
	}

	existing.Title = p.Title
	existing.Description = p.Description
	existing.Content = p.Content
	existing.Tags = slices.Clone(p.Tags)
	existing.Category = p.Category
	existing.IsPublic = p.IsPublic
	existing.UpdatedAt = p.UpdatedAt
	r.prompts[p.ID] = existing
	return nil
}

func (r *MemoryPromptRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prompts[id]
	if !ok || p.UserID != userID {
		return ErrPromptNotFound
	}

	delete(r.prompts, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemoryPromptRepository) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prompts[id]
	if !ok || !p.IsPublic {
		return ErrPromptNotFound
	}
	p.Views++
	r.prompts[id] = p
	return nil
}

func (r *MemoryPromptRepository) collect(keep func(model.Prompt) bool) []model.Prompt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Prompt, 0, len(r.order))
	for _, id := range r.order {
		if p := r.prompts[id]; keep(p) {
			out = append(out, clonePrompt(p))
		}
	}
	return out
}

func clonePrompt(p model.Prompt) model.Prompt {
	p.Tags = slices.Clone(p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// MemoryProfileRepository is the in-process profile store.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]model.Profile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[string]model.Profile)}
}

func (r *MemoryProfileRepository) Create(_ context.Context, p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.ID]; exists {
		return ErrDuplicateProfile
	}
	r.profiles[p.ID] = *p
	return nil
}

func (r *MemoryProfileRepository) GetByID(_ context.Context, id string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}
