package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

var ErrPromptNotFound = errors.New("prompt not found")

const promptColumns = `id, user_id, title, description, content, tags, category,
	is_public, views, likes, shares, created_at, updated_at`

// PromptRepository persists prompts in the `prompts` table.
type PromptRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewPromptRepository creates a new PromptRepository.
func NewPromptRepository(db *sql.DB, dialect Dialect) *PromptRepository {
	return &PromptRepository{db: db, dialect: dialect}
}

// Create inserts a fully populated prompt. The caller assigns the ID and timestamps.
func (r *PromptRepository) Create(ctx context.Context, p *model.Prompt) error {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return err
	}

	query := r.dialect.Rebind(`INSERT INTO prompts (` + promptColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Title, p.Description, p.Content, tags, string(p.Category),
		p.IsPublic, p.Views, p.Likes, p.Shares, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a prompt regardless of owner.
func (r *PromptRepository) GetByID(ctx context.Context, id string) (*model.Prompt, error) {
	query := r.dialect.Rebind(`SELECT ` + promptColumns + ` FROM prompts WHERE id = ?`)

	p, err := queryOne(ctx, r.db, query, []any{id}, scanPrompt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByUser retrieves a user's prompts, most recently updated first.
func (r *PromptRepository) ListByUser(ctx context.Context, userID string) ([]model.Prompt, error) {
	query := r.dialect.Rebind(`SELECT ` + promptColumns + `
		FROM prompts WHERE user_id = ? ORDER BY updated_at DESC`)

	return queryMany(ctx, r.db, query, []any{userID}, scanPrompt)
}

// ListPublic retrieves every public prompt ordered by view count. Ties keep
// whatever order the database returns.
func (r *PromptRepository) ListPublic(ctx context.Context) ([]model.Prompt, error) {
	query := `SELECT ` + promptColumns + `
		FROM prompts WHERE is_public = TRUE ORDER BY views DESC`

	return queryMany(ctx, r.db, query, nil, scanPrompt)
}

// Update writes every user-editable field plus updated_at. Counters, owner and
// created_at are never touched.
func (r *PromptRepository) Update(ctx context.Context, p *model.Prompt) error {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return err
	}

	query := r.dialect.Rebind(`UPDATE prompts
		SET title = ?, description = ?, content = ?, tags = ?, category = ?,
			is_public = ?, updated_at = ?
		WHERE id = ?`)

	_, err = r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Content, tags, string(p.Category),
		p.IsPublic, p.UpdatedAt, p.ID,
	)
	return err
}

// Delete removes a prompt owned by userID.
func (r *PromptRepository) Delete(ctx context.Context, id, userID string) error {
	query := r.dialect.Rebind(`DELETE FROM prompts WHERE id = ? AND user_id = ?`)

	err := execExpectOne(ctx, r.db, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPromptNotFound
	}
	return err
}

// IncrementViews bumps the view counter of a public prompt.
func (r *PromptRepository) IncrementViews(ctx context.Context, id string) error {
	query := r.dialect.Rebind(`UPDATE prompts SET views = views + 1 WHERE id = ? AND is_public = TRUE`)

	err := execExpectOne(ctx, r.db, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPromptNotFound
	}
	return err
}

func scanPrompt(s Scanner) (model.Prompt, error) {
	var (
		p        model.Prompt
		tags     string
		category string
	)
	err := s.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.Content, &tags, &category,
		&p.IsPublic, &p.Views, &p.Likes, &p.Shares, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Prompt{}, err
	}

	p.Category = model.Category(category)
	if p.Tags, err = decodeTags(tags); err != nil {
		return model.Prompt{}, fmt.Errorf("prompt %s: %w", p.ID, err)
	}
	return p, nil
}

// Tags are stored as a JSON array in a text column so both drivers share a schema.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
