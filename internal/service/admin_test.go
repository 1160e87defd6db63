package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	repoMocks "marketplace/internal/repository/mocks"
	"marketplace/internal/storage"
	storeMocks "marketplace/internal/storage/mocks"
)

type adminMocks struct {
	listings *repoMocks.MockListingRepository
	profiles *repoMocks.MockProfileRepository
	reports  *repoMocks.MockReportRepository
	store    *storeMocks.MockStorage
}

func newAdminService() (AdminService, *adminMocks) {
	m := &adminMocks{
		listings: new(repoMocks.MockListingRepository),
		profiles: new(repoMocks.MockProfileRepository),
		reports:  new(repoMocks.MockReportRepository),
		store:    new(storeMocks.MockStorage),
	}
	return NewAdminService(m.listings, m.profiles, m.reports, m.store, zerolog.Nop()), m
}

func TestAdminService_Overview(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, m := newAdminService()
		m.profiles.On("Count", ctx).Return(12, nil)
		m.listings.On("CountByStatus", ctx, model.StatusApproved).Return(30, nil)
		m.reports.On("Count", ctx).Return(2, nil)
		m.listings.On("ListByStatus", ctx, model.StatusPending, repository.PageQuery{}).
			Return(&repository.PageResult[model.Listing]{Items: []model.Listing{{ID: "l1"}}, Total: 1}, nil)

		out, err := svc.Overview(ctx)

		require.NoError(t, err)
		assert.Equal(t, model.Stats{TotalUsers: 12, ActiveListings: 30, PendingCount: 1, ReportsCount: 2}, out.Stats)
		assert.Len(t, out.Pending, 1)
	})

	t.Run("count error", func(t *testing.T) {
		svc, m := newAdminService()
		m.profiles.On("Count", ctx).Return(0, errors.New("boom"))

		_, err := svc.Overview(ctx)

		assert.EqualError(t, err, "count users: boom")
	})
}

func TestAdminService_Tabs(t *testing.T) {
	ctx := context.Background()
	svc, m := newAdminService()
	m.listings.On("ListByStatus", ctx, model.StatusPending, repository.PageQuery{}).
		Return(&repository.PageResult[model.Listing]{Items: []model.Listing{{ID: "l1"}}, Total: 1}, nil)
	m.profiles.On("ListRecent", ctx, 50).Return([]model.Profile{{ID: "u1"}}, nil)
	m.reports.On("ListRecent", ctx, 30).Return([]model.Report{{ID: "r1"}}, nil)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	reports, err := svc.Reports(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	m.listings.AssertExpectations(t)
	m.profiles.AssertExpectations(t)
	m.reports.AssertExpectations(t)
}

func TestAdminService_Moderation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(m *adminMocks)
		call       func(svc AdminService) error
		wantErr    error
	}{
		{
			name: "approve",
			setupMocks: func(m *adminMocks) {
				m.listings.On("UpdateStatus", ctx, testListingID, model.StatusApproved).Return(nil)
			},
			call: func(svc AdminService) error { return svc.Approve(ctx, testListingID) },
		},
		{
			name: "reject",
			setupMocks: func(m *adminMocks) {
				m.listings.On("UpdateStatus", ctx, testListingID, model.StatusRejected).Return(nil)
			},
			call: func(svc AdminService) error { return svc.Reject(ctx, testListingID) },
		},
		{
			name: "approve missing",
			setupMocks: func(m *adminMocks) {
				m.listings.On("UpdateStatus", ctx, missingID, model.StatusApproved).Return(sql.ErrNoRows)
			},
			call:    func(svc AdminService) error { return svc.Approve(ctx, missingID) },
			wantErr: ErrNotFound,
		},
		{
			name:       "approve malformed id",
			setupMocks: func(m *adminMocks) {},
			call:       func(svc AdminService) error { return svc.Approve(ctx, "abc") },
			wantErr:    ErrNotFound,
		},
		{
			name:       "reject malformed id",
			setupMocks: func(m *adminMocks) {},
			call:       func(svc AdminService) error { return svc.Reject(ctx, "1; DROP TABLE listings") },
			wantErr:    ErrNotFound,
		},
		{
			name:       "approve without id",
			setupMocks: func(m *adminMocks) {},
			call:       func(svc AdminService) error { return svc.Approve(ctx, "") },
			wantErr:    ErrIDRequired,
		},
		{
			name: "suspend",
			setupMocks: func(m *adminMocks) {
				m.profiles.On("SetSuspended", ctx, testUserID, true).Return(nil)
			},
			call: func(svc AdminService) error { return svc.Suspend(ctx, testUserID) },
		},
		{
			name: "suspend missing",
			setupMocks: func(m *adminMocks) {
				m.profiles.On("SetSuspended", ctx, missingID, true).Return(sql.ErrNoRows)
			},
			call:    func(svc AdminService) error { return svc.Suspend(ctx, missingID) },
			wantErr: ErrNotFound,
		},
		{
			name:       "suspend malformed id",
			setupMocks: func(m *adminMocks) {},
			call:       func(svc AdminService) error { return svc.Suspend(ctx, "u1") },
			wantErr:    ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAdminService()
			tt.setupMocks(m)

			err := tt.call(svc)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			m.listings.AssertExpectations(t)
			m.profiles.AssertExpectations(t)
		})
	}
}

func TestAdminService_RemoveListing(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes row then owned images", func(t *testing.T) {
		svc, m := newAdminService()
		m.listings.On("FindByID", ctx, testListingID).Return(&model.Listing{
			ID:     testListingID,
			Images: []string{"http://cdn/listing-images/a.jpg", "https://images.unsplash.com/x.jpg", "http://cdn/listing-images/b.jpg"},
		}, nil)
		m.listings.On("Delete", ctx, testListingID).Return(nil)
		m.store.On("KeyFromURL", "http://cdn/listing-images/a.jpg").Return("a.jpg", nil)
		m.store.On("KeyFromURL", "https://images.unsplash.com/x.jpg").Return("", storage.ErrForeignURL)
		m.store.On("KeyFromURL", "http://cdn/listing-images/b.jpg").Return("b.jpg", nil)
		m.store.On("Delete", ctx, "a.jpg").Return(errors.New("flaky"))
		m.store.On("Delete", ctx, "b.jpg").Return(nil)

		require.NoError(t, svc.RemoveListing(ctx, testListingID))
		m.listings.AssertExpectations(t)
		m.store.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		svc, m := newAdminService()
		m.listings.On("FindByID", ctx, missingID).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.RemoveListing(ctx, missingID), ErrNotFound)
		m.listings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, m := newAdminService()

		assert.ErrorIs(t, svc.RemoveListing(ctx, "abc"), ErrNotFound)
		m.listings.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("delete error keeps images", func(t *testing.T) {
		svc, m := newAdminService()
		m.listings.On("FindByID", ctx, testListingID).Return(&model.Listing{ID: testListingID, Images: []string{"http://cdn/a.jpg"}}, nil)
		m.listings.On("Delete", ctx, testListingID).Return(errors.New("db fail"))

		assert.EqualError(t, svc.RemoveListing(ctx, testListingID), "delete listing: db fail")
		m.store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAdminService_Promote(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes", func(t *testing.T) {
		svc, m := newAdminService()
		m.profiles.On("FindByEmail", ctx, "mona@example.com").Return(&model.Profile{ID: "u1", Role: model.RoleResident}, nil)
		m.profiles.On("SetRole", ctx, "u1", model.RoleAdmin).Return(nil)

		p, err := svc.Promote(ctx, " mona@example.com ")

		require.NoError(t, err)
		assert.True(t, p.IsAdmin())
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, m := newAdminService()
		m.profiles.On("FindByEmail", ctx, "x@example.com").Return(nil, sql.ErrNoRows)

		_, err := svc.Promote(ctx, "x@example.com")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty email", func(t *testing.T) {
		svc, _ := newAdminService()
		_, err := svc.Promote(ctx, "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
