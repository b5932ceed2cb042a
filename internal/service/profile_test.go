package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/promptstudio/promptstudio-go/internal/model"
	"github.com/promptstudio/promptstudio-go/internal/repository"
)

type countingProfileRepo struct {
	*repository.MemoryProfileRepository
	creates atomic.Int32
}

func (r *countingProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	r.creates.Add(1)
	return r.MemoryProfileRepository.Create(ctx, p)
}

func TestEnsureProfile_CreatesOnFirstUse(t *testing.T) {
	repo := &countingProfileRepo{MemoryProfileRepository: repository.NewMemoryProfileRepository()}
	svc := NewProfileService(repo, discardLogger())

	id := model.Identity{ID: "u1", Email: "ada@example.com", DisplayName: "Ada"}

	p, err := svc.EnsureProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "u1" || p.DisplayName != "Ada" || p.Subscription != model.DefaultSubscription {
		t.Errorf("unexpected profile: %+v", p)
	}

	if _, err := svc.EnsureProfile(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := repo.creates.Load(); n != 1 {
		t.Errorf("expected 1 create, got %d", n)
	}
}

func TestEnsureProfile_ConcurrentFirstCalls(t *testing.T) {
	repo := &countingProfileRepo{MemoryProfileRepository: repository.NewMemoryProfileRepository()}
	svc := NewProfileService(repo, discardLogger())
	id := model.Identity{ID: "u1", Email: "ada@example.com"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.EnsureProfile(context.Background(), id); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("profile not stored: %v", err)
	}
	if stored.Email != "ada@example.com" {
		t.Errorf("unexpected stored profile: %+v", stored)
	}
}

func TestEnsureProfile_ExistingProfile(t *testing.T) {
	repo := &countingProfileRepo{MemoryProfileRepository: repository.NewMemoryProfileRepository()}
	_ = repo.MemoryProfileRepository.Create(context.Background(), &model.Profile{ID: "u1", Subscription: "pro"})
	svc := NewProfileService(repo, discardLogger())

	p, err := svc.EnsureProfile(context.Background(), model.Identity{ID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Subscription != "pro" {
		t.Errorf("expected existing profile to be returned, got %+v", p)
	}
	if n := repo.creates.Load(); n != 0 {
		t.Errorf("expected no creates, got %d", n)
	}
}
