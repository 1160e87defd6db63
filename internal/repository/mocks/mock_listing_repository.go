package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/feed"
	"marketplace/internal/model"
	"marketplace/internal/repository"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *model.Listing) (*model.Listing, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) Feed(ctx context.Context, f feed.Filter) (*feed.Page, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feed.Page), args.Error(1)
}

func (m *MockListingRepository) ListByStatus(ctx context.Context, status model.ListingStatus, pq repository.PageQuery) (*repository.PageResult[model.Listing], error) {
	args := m.Called(ctx, status, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Listing]), args.Error(1)
}

func (m *MockListingRepository) ListByOwner(ctx context.Context, userID string) ([]model.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingRepository) CountByStatus(ctx context.Context, status model.ListingStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockListingRepository) UpdateStatus(ctx context.Context, id string, status model.ListingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) ReferencedImages(ctx context.Context, urls []string) (map[string]bool, error) {
	args := m.Called(ctx, urls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}
