package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"marketplace/internal/model"
	"marketplace/internal/repository"
)

// profileRow maps the profiles table.
type profileRow struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Role      string    `db:"role"`
	Verified  bool      `db:"verified"`
	Suspended bool      `db:"suspended"`
	CreatedAt time.Time `db:"created_at"`
}

func (r profileRow) toModel() model.Profile {
	return model.Profile{
		ID:        r.ID,
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		Role:      model.Role(r.Role),
		Verified:  r.Verified,
		Suspended: r.Suspended,
		CreatedAt: r.CreatedAt,
	}
}

const profileColumns = `id, full_name, email, phone, role, verified, suspended, created_at`

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
type ProfilePostgres struct {
	db *sqlx.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: sqlx.NewDb(db, "pgx")}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

// Upsert inserts or refreshes a profile. Verified and suspended flags of an existing profile
// are preserved.
func (r *ProfilePostgres) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email     = EXCLUDED.email,
			phone     = EXCLUDED.phone,
			role      = EXCLUDED.role
		RETURNING ` + profileColumns
	var row profileRow
	if err := r.db.QueryRowxContext(ctx, q,
		p.ID,
		p.FullName,
		strings.ToLower(p.Email),
		p.Phone,
		string(p.Role),
		p.Verified,
		p.Suspended,
		p.CreatedAt,
	).StructScan(&row); err != nil {
		return nil, translate(err)
	}
	out := row.toModel()
	return &out, nil
}

// FindByID fetches a profile by ID.
func (r *ProfilePostgres) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	var row profileRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id); err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

// FindByEmail fetches a profile by email, case-insensitively.
func (r *ProfilePostgres) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var row profileRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, strings.ToLower(email)); err != nil {
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

// ListRecent returns the newest profiles.
func (r *ProfilePostgres) ListRecent(ctx context.Context, limit int) ([]model.Profile, error) {
	var rows []profileRow
	const q = `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC, id DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, err
	}
	out := make([]model.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// Count returns the number of profiles.
func (r *ProfilePostgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM profiles`); err != nil {
		return 0, err
	}
	return n, nil
}

// SetSuspended updates the suspended flag.
func (r *ProfilePostgres) SetSuspended(ctx context.Context, id string, suspended bool) error {
	return r.execOne(ctx, `UPDATE profiles SET suspended = $1 WHERE id = $2`, suspended, id)
}

// SetRole updates the role.
func (r *ProfilePostgres) SetRole(ctx context.Context, id string, role model.Role) error {
	return r.execOne(ctx, `UPDATE profiles SET role = $1 WHERE id = $2`, string(role), id)
}

func (r *ProfilePostgres) execOne(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CredentialPostgres is a PostgreSQL implementation of repository.CredentialRepository.
type CredentialPostgres struct {
	db *sql.DB
}

// NewCredentialPostgres creates a new CredentialPostgres repository.
func NewCredentialPostgres(db *sql.DB) *CredentialPostgres {
	return &CredentialPostgres{db: db}
}

var _ repository.CredentialRepository = (*CredentialPostgres)(nil)

// Create stores a credential. Emails are stored lower-cased.
func (r *CredentialPostgres) Create(ctx context.Context, c *model.Credential) error {
	const q = `
		INSERT INTO auth_users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, q, c.ID, strings.ToLower(c.Email), c.PasswordHash, c.CreatedAt)
	return translate(err)
}

// FindByEmail fetches a credential by email.
func (r *CredentialPostgres) FindByEmail(ctx context.Context, email string) (*model.Credential, error) {
	const q = `SELECT id, email, password_hash, created_at FROM auth_users WHERE email = $1`
	var c model.Credential
	if err := r.db.QueryRowContext(ctx, q, strings.ToLower(email)).Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a credential. Deleting a missing id is not an error.
func (r *CredentialPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_users WHERE id = $1`, id)
	return err
}
