package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"marketplace/internal/model"
	"marketplace/internal/repository"
)

// SavedPostgres is a PostgreSQL implementation of repository.SavedRepository.
type SavedPostgres struct {
	db       *sql.DB
	listings *ListingPostgres
}

// NewSavedPostgres creates a new SavedPostgres repository.
func NewSavedPostgres(db *sql.DB) *SavedPostgres {
	return &SavedPostgres{db: db, listings: NewListingPostgres(db)}
}

var _ repository.SavedRepository = (*SavedPostgres)(nil)

// Insert stores the pair, ignoring an existing one.
func (r *SavedPostgres) Insert(ctx context.Context, s *model.SavedListing) error {
	const q = `
		INSERT INTO saved_listings (user_id, listing_id, listing_type, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, listing_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, s.UserID, s.ListingID, s.ListingType, s.CreatedAt)
	return translate(err)
}

// Delete removes the pair and reports whether a row was removed.
func (r *SavedPostgres) Delete(ctx context.Context, userID, listingID string) (bool, error) {
	const q = `DELETE FROM saved_listings WHERE user_id = $1 AND listing_id = $2`
	res, err := r.db.ExecContext(ctx, q, userID, listingID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SavedAmong returns the subset of listingIDs saved by userID.
func (r *SavedPostgres) SavedAmong(ctx context.Context, userID string, listingIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(listingIDs))
	if len(listingIDs) == 0 {
		return out, nil
	}
	const q = `SELECT listing_id FROM saved_listings WHERE user_id = $1 AND listing_id = ANY($2)`
	rows, err := r.db.QueryContext(ctx, q, userID, pq.Array(listingIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// ListByUser returns the user's saved listings, most recently saved first.
func (r *SavedPostgres) ListByUser(ctx context.Context, userID string) ([]model.Listing, error) {
	ds := joined().
		Select(listingColumns...).
		InnerJoin(goqu.T("saved_listings").As("s"), goqu.On(goqu.I("s.listing_id").Eq(goqu.I("l.id")))).
		Where(goqu.I("s.user_id").Eq(userID)).
		Order(goqu.I("s.created_at").Desc())
	items, err := r.listings.queryListings(ctx, ds)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].IsSaved = true
	}
	return items, nil
}

// reportRow maps a report joined with listing title and reporter name.
type reportRow struct {
	ID           string         `db:"id"`
	ListingID    string         `db:"listing_id"`
	ReporterID   sql.NullString `db:"reporter_id"`
	Reason       string         `db:"reason"`
	CreatedAt    time.Time      `db:"created_at"`
	ListingTitle string         `db:"listing_title"`
	ReporterName string         `db:"reporter_name"`
}

// ReportPostgres is a PostgreSQL implementation of repository.ReportRepository.
type ReportPostgres struct {
	db *sqlx.DB
}

// NewReportPostgres creates a new ReportPostgres repository.
func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: sqlx.NewDb(db, "pgx")}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

// Create inserts a report and returns it.
func (r *ReportPostgres) Create(ctx context.Context, rep *model.Report) (*model.Report, error) {
	const q = `
		INSERT INTO reports (id, listing_id, reporter_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	out := *rep
	if err := r.db.QueryRowContext(ctx, q, rep.ID, rep.ListingID, rep.ReporterID, rep.Reason, rep.CreatedAt).
		Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// ListRecent returns the newest reports with listing title and reporter name.
func (r *ReportPostgres) ListRecent(ctx context.Context, limit int) ([]model.Report, error) {
	const q = `
		SELECT r.id, r.listing_id, r.reporter_id, r.reason, r.created_at,
			COALESCE(l.title, '') AS listing_title,
			COALESCE(p.full_name, '') AS reporter_name
		FROM reports r
		LEFT JOIN listings l ON l.id = r.listing_id
		LEFT JOIN profiles p ON p.id = r.reporter_id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1
	`
	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, err
	}
	out := make([]model.Report, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.Report{
			ID:           row.ID,
			ListingID:    row.ListingID,
			ReporterID:   row.ReporterID.String,
			Reason:       row.Reason,
			CreatedAt:    row.CreatedAt,
			ListingTitle: row.ListingTitle,
			ReporterName: row.ReporterName,
		})
	}
	return out, nil
}

// Count returns the number of reports.
func (r *ReportPostgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reports`); err != nil {
		return 0, err
	}
	return n, nil
}
