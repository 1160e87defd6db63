package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/feed"
	"marketplace/internal/model"
	"marketplace/internal/service"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Feed(ctx context.Context, params feed.Params, viewerID string) (*service.FeedResult, error) {
	args := m.Called(ctx, params, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FeedResult), args.Error(1)
}

func (m *MockListingService) Detail(ctx context.Context, id string, v service.Viewer) (*service.ListingDetail, error) {
	args := m.Called(ctx, id, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListingDetail), args.Error(1)
}

func (m *MockListingService) UploadImages(ctx context.Context, userID string, existing int, files []service.ImageUpload) ([]string, error) {
	args := m.Called(ctx, userID, existing, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, userID string, in service.CreateListingInput) (*model.Listing, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingService) MyListings(ctx context.Context, userID string) ([]model.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingService) ToggleSave(ctx context.Context, userID, listingID string) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockListingService) Saved(ctx context.Context, userID string) ([]model.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingService) Report(ctx context.Context, reporterID, listingID, reason string) (*model.Report, error) {
	args := m.Called(ctx, reporterID, listingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}
