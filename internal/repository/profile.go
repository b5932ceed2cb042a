package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrDuplicateProfile = errors.New("profile already exists")
)

// ProfileRepository persists profiles in the `profiles` table.
type ProfileRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sql.DB, dialect Dialect) *ProfileRepository {
	return &ProfileRepository{db: db, dialect: dialect}
}

// Create inserts a profile keyed by the identity id.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := r.dialect.Rebind(`INSERT INTO profiles (id, email, display_name, avatar_url, subscription, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.DisplayName, p.AvatarURL, p.Subscription, p.CreatedAt,
	)
	if isDuplicateEntryError(err) {
		return ErrDuplicateProfile
	}
	return err
}

// GetByID retrieves a profile by identity id.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	query := r.dialect.Rebind(`SELECT id, email, display_name, avatar_url, subscription, created_at
		FROM profiles WHERE id = ?`)

	p := &model.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.DisplayName, &p.AvatarURL, &p.Subscription, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return p, nil
}
