package repository

import (
	"context"

	"marketplace/internal/model"
)

// ProfileRepository persists profiles.
type ProfileRepository interface {
	// Upsert inserts the profile or overwrites name, email, phone and role of an existing one.
	Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error)
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	// ListRecent returns up to limit profiles, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Profile, error)
	Count(ctx context.Context) (int, error)
	// SetSuspended returns sql.ErrNoRows if the profile does not exist.
	SetSuspended(ctx context.Context, id string, suspended bool) error
	// SetRole returns sql.ErrNoRows if the profile does not exist.
	SetRole(ctx context.Context, id string, role model.Role) error
}

// CredentialRepository persists sign-in credentials.
type CredentialRepository interface {
	// Create returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, c *model.Credential) error
	FindByEmail(ctx context.Context, email string) (*model.Credential, error)
	Delete(ctx context.Context, id string) error
}
