package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/model"
)

func TestSavedPostgres_InsertDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSavedPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO saved_listings (.+) ON CONFLICT \(user_id, listing_id\) DO NOTHING`).
		WithArgs("user-1", "listing-1", model.SavedKindProperty, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM saved_listings WHERE user_id = \$1 AND listing_id = \$2`).
		WithArgs("user-1", "listing-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM saved_listings`).
		WithArgs("user-1", "listing-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Insert(ctx, &model.SavedListing{
		UserID:      "user-1",
		ListingID:   "listing-1",
		ListingType: model.SavedKindProperty,
		CreatedAt:   now,
	})
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, "user-1", "listing-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "user-1", "listing-2")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedPostgres_SavedAmong(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSavedPostgres(db)
	ctx := context.Background()

	t.Run("no ids", func(t *testing.T) {
		got, err := repo.SavedAmong(ctx, "user-1", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("subset", func(t *testing.T) {
		mock.ExpectQuery(`SELECT listing_id FROM saved_listings WHERE user_id = \$1 AND listing_id = ANY\(\$2\)`).
			WillReturnRows(sqlmock.NewRows([]string{"listing_id"}).AddRow("listing-2"))

		got, err := repo.SavedAmong(ctx, "user-1", []string{"listing-1", "listing-2"})

		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"listing-2": true}, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavedPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSavedPostgres(db)

	mock.ExpectQuery(`SELECT (.+) FROM "listings" AS "l" (.+) INNER JOIN "saved_listings" AS "s" (.+) ORDER BY "s"."created_at" DESC`).
		WithArgs("user-1").
		WillReturnRows(addListingRow(sqlmock.NewRows(listingRowColumns), "listing-1", "A", "{}"))

	items, err := repo.ListByUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsSaved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewReportPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("create", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO reports`).
			WithArgs("report-1", "listing-1", "user-1", model.DefaultReportReason, now).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("report-1", now))

		out, err := repo.Create(ctx, &model.Report{
			ID:         "report-1",
			ListingID:  "listing-1",
			ReporterID: "user-1",
			Reason:     model.DefaultReportReason,
			CreatedAt:  now,
		})

		require.NoError(t, err)
		assert.Equal(t, "report-1", out.ID)
	})

	t.Run("list recent", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM reports r LEFT JOIN listings l (.+) LIMIT \$1`).
			WithArgs(30).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "listing_id", "reporter_id", "reason", "created_at", "listing_title", "reporter_name",
			}).AddRow("report-1", "listing-1", "user-1", "Spam", now, "Sea View Villa", "Mona"))

		items, err := repo.ListRecent(ctx, 30)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Sea View Villa", items[0].ListingTitle)
		assert.Equal(t, "Mona", items[0].ReporterName)
	})

	t.Run("list recent with deleted reporter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM reports r LEFT JOIN listings l (.+) LIMIT \$1`).
			WithArgs(30).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "listing_id", "reporter_id", "reason", "created_at", "listing_title", "reporter_name",
			}).AddRow("report-2", "listing-1", nil, "Spam", now, "Sea View Villa", ""))

		items, err := repo.ListRecent(ctx, 30)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Empty(t, items[0].ReporterID)
		assert.Empty(t, items[0].ReporterName)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM reports`).WillReturnError(errors.New("boom"))

		_, err := repo.Count(ctx)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
