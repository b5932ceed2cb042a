// Package collection caches the signed-in user's prompts and the public
// library on the client and keeps them in step with the remote store.
package collection

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

// ErrValidation is returned by Create when title or content is blank.
var ErrValidation = errors.New("title and content are required")

// Gateway is the remote prompt store. *client.PromptsClient satisfies it.
type Gateway interface {
	Create(ctx context.Context, draft model.PromptDraft, ownerID string) (model.Prompt, error)
	Update(ctx context.Context, id string, patch model.PromptPatch) (model.Prompt, error)
	Delete(ctx context.Context, id string) error
	ListOwn(ctx context.Context, ownerID string) ([]model.Prompt, error)
	ListPublic(ctx context.Context) ([]model.Prompt, error)
}

// Store holds two collections: the caller's own prompts and the public
// library. Each is replaced wholesale on load; for a given id the last
// completed write wins.
type Store struct {
	gateway Gateway
	logger  *slog.Logger

	mu     sync.RWMutex
	own    []model.Prompt
	public []model.Prompt
}

func NewStore(gateway Gateway, logger *slog.Logger) *Store {
	return &Store{
		gateway: gateway,
		logger:  logger.With("system", "collection"),
		own:     []model.Prompt{},
		public:  []model.Prompt{},
	}
}

// Own returns a copy of the own-prompts collection.
func (s *Store) Own() []model.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.own)
}

// Public returns a copy of the public library collection.
func (s *Store) Public() []model.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.public)
}

// Create stores a new prompt remotely and appends the persisted record to
// the own collection. A blank title or content fails without a remote call.
func (s *Store) Create(ctx context.Context, draft model.PromptDraft, ownerID string) (model.Prompt, error) {
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Content) == "" {
		return model.Prompt{}, ErrValidation
	}

	p, err := s.gateway.Create(ctx, draft, ownerID)
	if err != nil {
		s.logger.Error("creating prompt", "error", err)
		return model.Prompt{}, err
	}

	s.mu.Lock()
	s.own = append(s.own, p)
	s.mu.Unlock()

	s.logger.Info("prompt created", "id", p.ID)
	return p, nil
}

// Update applies patch remotely and replaces the cached entry in both
// collections with what the server persisted.
func (s *Store) Update(ctx context.Context, id string, patch model.PromptPatch) (model.Prompt, error) {
	p, err := s.gateway.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("updating prompt", "id", id, "error", err)
		return model.Prompt{}, err
	}

	s.mu.Lock()
	replace(s.own, p)
	replace(s.public, p)
	s.mu.Unlock()

	return p, nil
}

// Delete removes a prompt remotely and from both collections. A prompt the
// server no longer has counts as deleted.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.gateway.Delete(ctx, id); err != nil && !isNotFound(err) {
		s.logger.Error("deleting prompt", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.own = remove(s.own, id)
	s.public = remove(s.public, id)
	s.mu.Unlock()

	return nil
}

// ListOwn reloads the own collection. A failed read is logged and leaves
// the collection empty.
func (s *Store) ListOwn(ctx context.Context, ownerID string) []model.Prompt {
	prompts, err := s.gateway.ListOwn(ctx, ownerID)
	if err != nil {
		s.logger.Warn("loading own prompts", "error", err)
		prompts = nil
	}
	if prompts == nil {
		prompts = []model.Prompt{}
	}

	s.mu.Lock()
	s.own = prompts
	s.mu.Unlock()

	return slices.Clone(prompts)
}

// ListPublic reloads the public library, degrading to empty like ListOwn.
func (s *Store) ListPublic(ctx context.Context) []model.Prompt {
	prompts, err := s.gateway.ListPublic(ctx)
	if err != nil {
		s.logger.Warn("loading public prompts", "error", err)
		prompts = nil
	}
	if prompts == nil {
		prompts = []model.Prompt{}
	}

	s.mu.Lock()
	s.public = prompts
	s.mu.Unlock()

	return slices.Clone(prompts)
}

// Refresh reloads both collections concurrently. An empty ownerID reloads
// only the public library.
func (s *Store) Refresh(ctx context.Context, ownerID string) {
	var g errgroup.Group
	if ownerID != "" {
		g.Go(func() error {
			s.ListOwn(ctx, ownerID)
			return nil
		})
	}
	g.Go(func() error {
		s.ListPublic(ctx)
		return nil
	})
	g.Wait()
}

func replace(prompts []model.Prompt, p model.Prompt) {
	for i := range prompts {
		if prompts[i].ID == p.ID {
			prompts[i] = p
		}
	}
}

func remove(prompts []model.Prompt, id string) []model.Prompt {
	return slices.DeleteFunc(prompts, func(p model.Prompt) bool { return p.ID == id })
}

// isNotFound matches remote errors that report a missing record.
func isNotFound(err error) bool {
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}
