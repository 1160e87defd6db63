package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/model"
)

type MockSavedRepository struct {
	mock.Mock
}

func (m *MockSavedRepository) Insert(ctx context.Context, s *model.SavedListing) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSavedRepository) Delete(ctx context.Context, userID, listingID string) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedRepository) SavedAmong(ctx context.Context, userID string, listingIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, userID, listingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockSavedRepository) ListByUser(ctx context.Context, userID string) ([]model.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, r *model.Report) (*model.Report, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) ListRecent(ctx context.Context, limit int) ([]model.Report, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockReportRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
