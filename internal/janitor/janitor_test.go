package janitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	repoMocks "marketplace/internal/repository/mocks"
	"marketplace/internal/storage"
	storageMocks "marketplace/internal/storage/mocks"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newJanitor(store storage.Storage, index ImageIndex) *Janitor {
	j := New(store, index, 24*time.Hour, zerolog.Nop())
	j.now = func() time.Time { return now }
	return j
}

func object(key string, age time.Duration) storage.ObjectInfo {
	return storage.ObjectInfo{Key: key, URL: "http://cdn/listing-images/" + key, LastModified: now.Add(-age)}
}

func TestSweep(t *testing.T) {
	store := new(storageMocks.MockStorage)
	index := new(repoMocks.MockListingRepository)

	kept := object("listings/u1/1_kept.jpg", 48*time.Hour)
	orphan := object("listings/u1/2_orphan.jpg", 48*time.Hour)
	fresh := object("listings/u1/3_fresh.jpg", time.Hour)

	store.On("List", mock.Anything, ImagePrefix).Return([]storage.ObjectInfo{kept, orphan, fresh}, nil).Once()
	index.On("ReferencedImages", mock.Anything, []string{kept.URL, orphan.URL}).
		Return(map[string]bool{kept.URL: true}, nil).Once()
	store.On("Delete", mock.Anything, orphan.Key).Return(nil).Once()

	res, err := newJanitor(store, index).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 3, Deleted: 1}, res)
	store.AssertExpectations(t)
	index.AssertExpectations(t)
}

func TestSweep_FillsMissingURL(t *testing.T) {
	store := new(storageMocks.MockStorage)
	index := new(repoMocks.MockListingRepository)

	o := storage.ObjectInfo{Key: "listings/u1/old.jpg", LastModified: now.Add(-72 * time.Hour)}
	store.On("List", mock.Anything, ImagePrefix).Return([]storage.ObjectInfo{o}, nil).Once()
	store.On("PublicURL", o.Key).Return("http://cdn/listing-images/listings/u1/old.jpg").Once()
	index.On("ReferencedImages", mock.Anything, []string{"http://cdn/listing-images/listings/u1/old.jpg"}).
		Return(map[string]bool{}, nil).Once()
	store.On("Delete", mock.Anything, o.Key).Return(nil).Once()

	res, err := newJanitor(store, index).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	store.AssertExpectations(t)
}

func TestSweep_DeleteFailureCounted(t *testing.T) {
	store := new(storageMocks.MockStorage)
	index := new(repoMocks.MockListingRepository)

	a := object("listings/u1/a.jpg", 48*time.Hour)
	b := object("listings/u1/b.jpg", 48*time.Hour)
	store.On("List", mock.Anything, ImagePrefix).Return([]storage.ObjectInfo{a, b}, nil).Once()
	index.On("ReferencedImages", mock.Anything, mock.Anything).Return(map[string]bool{}, nil).Once()
	store.On("Delete", mock.Anything, a.Key).Return(errors.New("access denied")).Once()
	store.On("Delete", mock.Anything, b.Key).Return(nil).Once()

	res, err := newJanitor(store, index).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 2, Deleted: 1, Failed: 1}, res)
}

func TestSweep_Errors(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		store.On("List", mock.Anything, ImagePrefix).Return(nil, errors.New("bucket gone")).Once()

		_, err := newJanitor(store, new(repoMocks.MockListingRepository)).Sweep(context.Background())

		assert.ErrorContains(t, err, "list images")
	})

	t.Run("references", func(t *testing.T) {
		store := new(storageMocks.MockStorage)
		index := new(repoMocks.MockListingRepository)
		store.On("List", mock.Anything, ImagePrefix).
			Return([]storage.ObjectInfo{object("listings/u1/a.jpg", 48*time.Hour)}, nil).Once()
		index.On("ReferencedImages", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := newJanitor(store, index).Sweep(context.Background())

		assert.ErrorContains(t, err, "check references")
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestSweep_NothingOldEnough(t *testing.T) {
	store := new(storageMocks.MockStorage)
	index := new(repoMocks.MockListingRepository)
	store.On("List", mock.Anything, ImagePrefix).
		Return([]storage.ObjectInfo{object("listings/u1/a.jpg", time.Minute)}, nil).Once()

	res, err := newJanitor(store, index).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{Scanned: 1}, res)
	index.AssertNotCalled(t, "ReferencedImages", mock.Anything, mock.Anything)
}

func TestStart_InvalidSchedule(t *testing.T) {
	j := newJanitor(new(storageMocks.MockStorage), new(repoMocks.MockListingRepository))

	assert.Error(t, j.Start("not a schedule"))
	j.Stop(context.Background())
}

func TestStartStop(t *testing.T) {
	j := newJanitor(new(storageMocks.MockStorage), new(repoMocks.MockListingRepository))

	require.NoError(t, j.Start("0 0 3 * * *"))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	j.Stop(ctx)
}
