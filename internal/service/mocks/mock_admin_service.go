package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/model"
	"marketplace/internal/service"
)

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Overview(ctx context.Context) (*service.Overview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Overview), args.Error(1)
}

func (m *MockAdminService) Pending(ctx context.Context) ([]model.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockAdminService) Users(ctx context.Context) ([]model.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

func (m *MockAdminService) Reports(ctx context.Context) ([]model.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockAdminService) Approve(ctx context.Context, listingID string) error {
	return m.Called(ctx, listingID).Error(0)
}

func (m *MockAdminService) Reject(ctx context.Context, listingID string) error {
	return m.Called(ctx, listingID).Error(0)
}

func (m *MockAdminService) Suspend(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAdminService) RemoveListing(ctx context.Context, listingID string) error {
	return m.Called(ctx, listingID).Error(0)
}

func (m *MockAdminService) Promote(ctx context.Context, email string) (*model.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}
