package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

func TestRebind(t *testing.T) {
	query := `UPDATE prompts SET title = ?, content = ? WHERE id = ?`

	if got := Dialect(DriverMySQL).Rebind(query); got != query {
		t.Errorf("mysql Rebind() = %q, want unchanged", got)
	}

	want := `UPDATE prompts SET title = $1, content = $2 WHERE id = $3`
	if got := Dialect(DriverPostgres).Rebind(query); got != want {
		t.Errorf("postgres Rebind() = %q, want %q", got, want)
	}
}

func TestNewDBUnsupportedDriver(t *testing.T) {
	if _, err := NewDB("sqlite", "file.db"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrPromptNotFound.Error() != "prompt not found" {
		t.Fatalf("unexpected error message: %s", ErrPromptNotFound.Error())
	}
	if ErrProfileNotFound.Error() != "profile not found" {
		t.Fatalf("unexpected error message: %s", ErrProfileNotFound.Error())
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrPromptNotFound, false},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"mysql other", &mysql.MySQLError{Number: 1045}, false},
		{"wrapped postgres unique", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"postgres other", &pq.Error{Code: "23503"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateEntryError(tt.err); got != tt.want {
				t.Errorf("isDuplicateEntryError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagsRoundTrip(t *testing.T) {
	raw, err := encodeTags(nil)
	if err != nil {
		t.Fatalf("encodeTags() unexpected error: %v", err)
	}
	if raw != "[]" {
		t.Errorf("encodeTags(nil) = %q, want %q", raw, "[]")
	}

	tags, err := decodeTags(`["seo","blog"]`)
	if err != nil {
		t.Fatalf("decodeTags() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"seo", "blog"}) {
		t.Errorf("decodeTags() = %q", tags)
	}

	if tags, _ := decodeTags(""); tags == nil || len(tags) != 0 {
		t.Errorf("decodeTags(\"\") = %#v, want empty slice", tags)
	}
	if _, err := decodeTags("{"); err == nil {
		t.Error("decodeTags() expected error for malformed JSON")
	}
}

func TestMemoryPromptRepositoryListPublic(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPromptRepository()

	fixtures := []struct {
		id     string
		views  int64
		public bool
	}{
		{"a", 5, true},
		{"b", 1, true},
		{"c", 9, false},
		{"d", 9, true},
	}
	for _, f := range fixtures {
		p := &model.Prompt{ID: f.id, UserID: "u1", Views: f.views, IsPublic: f.public}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}

	got, err := repo.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic() unexpected error: %v", err)
	}

	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	if !reflect.DeepEqual(ids, []string{"d", "a", "b"}) {
		t.Errorf("ListPublic() ids = %v, want [d a b]", ids)
	}
}

func TestMemoryPromptRepositoryListByUserOrdersByUpdatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPromptRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_ = repo.Create(ctx, &model.Prompt{ID: "old", UserID: "u1", UpdatedAt: base})
	_ = repo.Create(ctx, &model.Prompt{ID: "new", UserID: "u1", UpdatedAt: base.Add(time.Hour)})
	_ = repo.Create(ctx, &model.Prompt{ID: "other", UserID: "u2", UpdatedAt: base})

	got, _ := repo.ListByUser(ctx, "u1")
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("ListByUser() = %+v, want [new old]", got)
	}
}

func TestMemoryPromptRepositoryDeleteChecksOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPromptRepository()
	_ = repo.Create(ctx, &model.Prompt{ID: "p1", UserID: "u1"})

	if err := repo.Delete(ctx, "p1", "intruder"); !errors.Is(err, ErrPromptNotFound) {
		t.Errorf("Delete() by non-owner error = %v, want ErrPromptNotFound", err)
	}
	if err := repo.Delete(ctx, "p1", "u1"); err != nil {
		t.Errorf("Delete() unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, "p1"); !errors.Is(err, ErrPromptNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrPromptNotFound", err)
	}
}

func TestMemoryPromptRepositoryIncrementViews(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPromptRepository()
	_ = repo.Create(ctx, &model.Prompt{ID: "pub", UserID: "u1", IsPublic: true})
	_ = repo.Create(ctx, &model.Prompt{ID: "priv", UserID: "u1"})

	if err := repo.IncrementViews(ctx, "pub"); err != nil {
		t.Fatalf("IncrementViews() unexpected error: %v", err)
	}
	if err := repo.IncrementViews(ctx, "priv"); !errors.Is(err, ErrPromptNotFound) {
		t.Errorf("IncrementViews() on private prompt error = %v, want ErrPromptNotFound", err)
	}

	p, _ := repo.GetByID(ctx, "pub")
	if p.Views != 1 {
		t.Errorf("Views = %d, want 1", p.Views)
	}
}

func TestMemoryProfileRepositoryDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProfileRepository()

	if err := repo.Create(ctx, &model.Profile{ID: "u1"}); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if err := repo.Create(ctx, &model.Profile{ID: "u1"}); !errors.Is(err, ErrDuplicateProfile) {
		t.Errorf("second Create() error = %v, want ErrDuplicateProfile", err)
	}
}
