package postgres

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"marketplace/internal/feed"
	"marketplace/internal/model"
	"marketplace/internal/repository"
)

// ListingPostgres is a PostgreSQL implementation of repository.ListingRepository.
type ListingPostgres struct {
	db *sql.DB
}

// NewListingPostgres creates a new ListingPostgres repository.
func NewListingPostgres(db *sql.DB) *ListingPostgres {
	return &ListingPostgres{db: db}
}

var _ repository.ListingRepository = (*ListingPostgres)(nil)

// listingColumns is the projection shared by every joined listing read.
var listingColumns = []any{
	goqu.I("l.id"),
	goqu.I("l.title"),
	goqu.I("l.price"),
	goqu.I("l.property_type"),
	goqu.I("l.phase"),
	goqu.I("l.bedrooms"),
	goqu.I("l.bathrooms"),
	goqu.I("l.area"),
	goqu.I("l.description"),
	goqu.I("l.images"),
	goqu.I("l.listing_type"),
	goqu.I("l.badge"),
	goqu.I("l.status"),
	goqu.I("l.views"),
	goqu.I("l.user_id"),
	goqu.I("l.created_at"),
	goqu.L(`COALESCE("p"."full_name", '')`).As("owner_name"),
	goqu.L(`COALESCE("p"."phone", '')`).As("owner_phone"),
	goqu.L(`COALESCE("p"."email", '')`).As("owner_email"),
}

// joined is the listings-with-owner dataset every read starts from.
func joined() *goqu.SelectDataset {
	return dialect.From(goqu.T("listings").As("l")).
		LeftJoin(goqu.T("profiles").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("l.user_id")))).
		Prepared(true)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(s rowScanner) (*model.Listing, error) {
	var (
		l     model.Listing
		owner model.Owner
	)
	if err := s.Scan(
		&l.ID,
		&l.Title,
		&l.Price,
		&l.PropertyType,
		&l.Phase,
		&l.Bedrooms,
		&l.Bathrooms,
		&l.Area,
		&l.Description,
		pq.Array(&l.Images),
		&l.ListingType,
		&l.Badge,
		&l.Status,
		&l.Views,
		&l.UserID,
		&l.CreatedAt,
		&owner.FullName,
		&owner.Phone,
		&owner.Email,
	); err != nil {
		return nil, err
	}
	if l.Images == nil {
		l.Images = []string{}
	}
	l.Owner = &owner
	return &l, nil
}

func (r *ListingPostgres) queryListings(ctx context.Context, ds *goqu.SelectDataset) ([]model.Listing, error) {
	q, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ListingPostgres) count(ctx context.Context, ds *goqu.SelectDataset) (int, error) {
	q, args, err := ds.Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Create inserts a new listing row and returns the stored record.
func (r *ListingPostgres) Create(ctx context.Context, l *model.Listing) (*model.Listing, error) {
	const q = `
		INSERT INTO listings (id, title, price, property_type, phase, bedrooms, bathrooms, area,
			description, images, listing_type, badge, status, views, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`
	out := *l
	if err := r.db.QueryRowContext(ctx, q,
		l.ID,
		l.Title,
		l.Price,
		l.PropertyType,
		l.Phase,
		l.Bedrooms,
		l.Bathrooms,
		l.Area,
		l.Description,
		pq.Array(l.Images),
		l.ListingType,
		l.Badge,
		l.Status,
		l.Views,
		l.UserID,
		l.CreatedAt,
	).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// FindByID fetches a single listing with its owner.
func (r *ListingPostgres) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	q, args, err := joined().Select(listingColumns...).Where(goqu.I("l.id").Eq(id)).ToSQL()
	if err != nil {
		return nil, err
	}
	return scanListing(r.db.QueryRowContext(ctx, q, args...))
}

// feedConditions translates a feed filter into WHERE expressions.
// Approved status and transaction type always apply.
func feedConditions(f feed.Filter) []exp.Expression {
	conds := []exp.Expression{
		goqu.I("l.status").Eq(string(model.StatusApproved)),
		goqu.I("l.listing_type").Eq(string(f.ListingType)),
	}
	if f.Phase != "" {
		conds = append(conds, goqu.I("l.phase").Eq(f.Phase))
	}
	if f.PropertyType != "" {
		conds = append(conds, goqu.I("l.property_type").Eq(f.PropertyType))
	}
	if f.MinPrice != nil {
		conds = append(conds, goqu.I("l.price").Gte(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, goqu.I("l.price").Lte(*f.MaxPrice))
	}
	if f.Beds.Set {
		if f.Beds.AtLeast {
			conds = append(conds, goqu.I("l.bedrooms").Gte(f.Beds.Count))
		} else {
			conds = append(conds, goqu.I("l.bedrooms").Eq(f.Beds.Count))
		}
	}
	if p := f.TitlePattern(); p != "" {
		conds = append(conds, goqu.I("l.title").ILike(p))
	}
	return conds
}

// Feed returns a page of approved listings matching f.
func (r *ListingPostgres) Feed(ctx context.Context, f feed.Filter) (*feed.Page, error) {
	base := joined().Where(feedConditions(f)...)

	total, err := r.count(ctx, base)
	if err != nil {
		return nil, err
	}

	ds := base.Select(listingColumns...).
		Order(goqu.I("l.created_at").Desc(), goqu.I("l.id").Desc()).
		Limit(uint(f.Limit)).
		Offset(uint(f.Offset))
	items, err := r.queryListings(ctx, ds)
	if err != nil {
		return nil, err
	}
	return &feed.Page{Items: items, Total: total}, nil
}

// ListByStatus returns listings in the given status, newest first.
func (r *ListingPostgres) ListByStatus(ctx context.Context, status model.ListingStatus, page repository.PageQuery) (*repository.PageResult[model.Listing], error) {
	base := joined().Where(goqu.I("l.status").Eq(string(status)))

	total, err := r.count(ctx, base)
	if err != nil {
		return nil, err
	}

	ds := base.Select(listingColumns...).Order(goqu.I("l.created_at").Desc(), goqu.I("l.id").Desc())
	if page.Limit > 0 {
		ds = ds.Limit(uint(page.Limit))
	}
	if page.Offset > 0 {
		ds = ds.Offset(uint(page.Offset))
	}
	items, err := r.queryListings(ctx, ds)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Listing]{Items: items, Total: total}, nil
}

// ListByOwner returns all listings of a user, newest first.
func (r *ListingPostgres) ListByOwner(ctx context.Context, userID string) ([]model.Listing, error) {
	ds := joined().Select(listingColumns...).
		Where(goqu.I("l.user_id").Eq(userID)).
		Order(goqu.I("l.created_at").Desc(), goqu.I("l.id").Desc())
	return r.queryListings(ctx, ds)
}

// CountByStatus counts listings in a status.
func (r *ListingPostgres) CountByStatus(ctx context.Context, status model.ListingStatus) (int, error) {
	const q = `SELECT COUNT(*) FROM listings WHERE status = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, string(status)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateStatus sets the moderation status of a listing.
func (r *ListingPostgres) UpdateStatus(ctx context.Context, id string, status model.ListingStatus) error {
	const q = `UPDATE listings SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, string(status), id)
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

// IncrementViews adds one view and returns the new count.
func (r *ListingPostgres) IncrementViews(ctx context.Context, id string) (int64, error) {
	const q = `UPDATE listings SET views = views + 1 WHERE id = $1 RETURNING views`
	var views int64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&views); err != nil {
		return 0, err
	}
	return views, nil
}

// Delete removes a listing by ID. It does not return an error if the row does not exist.
func (r *ListingPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM listings WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// ReferencedImages returns which of urls appear in any listing's images.
func (r *ListingPostgres) ReferencedImages(ctx context.Context, urls []string) (map[string]bool, error) {
	out := make(map[string]bool, len(urls))
	if len(urls) == 0 {
		return out, nil
	}
	const q = `
		SELECT DISTINCT img
		FROM listings, unnest(images) AS img
		WHERE img = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Array(urls))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		out[u] = true
	}
	return out, rows.Err()
}
