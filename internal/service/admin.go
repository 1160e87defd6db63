package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/storage"
)

const (
	adminUsersLimit   = 50
	adminReportsLimit = 30
)

// Overview is the first tab of the admin dashboard.
type Overview struct {
	Stats   model.Stats     `json:"stats"`
	Pending []model.Listing `json:"pending"`
}

// AdminService defines the moderation use cases. Callers must be admins.
type AdminService interface {
	Overview(ctx context.Context) (*Overview, error)
	Pending(ctx context.Context) ([]model.Listing, error)
	Users(ctx context.Context) ([]model.Profile, error)
	Reports(ctx context.Context) ([]model.Report, error)
	Approve(ctx context.Context, listingID string) error
	Reject(ctx context.Context, listingID string) error
	Suspend(ctx context.Context, userID string) error
	// RemoveListing deletes a listing and its stored images.
	RemoveListing(ctx context.Context, listingID string) error
	// Promote grants the admin role to the profile with the given email.
	Promote(ctx context.Context, email string) (*model.Profile, error)
}

type adminService struct {
	listings repository.ListingRepository
	profiles repository.ProfileRepository
	reports  repository.ReportRepository
	store    storage.Storage
	log      zerolog.Logger
}

// NewAdminService constructs a new AdminService. store may be nil when images are not removed.
func NewAdminService(listings repository.ListingRepository, profiles repository.ProfileRepository, reports repository.ReportRepository, store storage.Storage, log zerolog.Logger) AdminService {
	return &adminService{listings: listings, profiles: profiles, reports: reports, store: store, log: log}
}

func (s *adminService) Overview(ctx context.Context) (*Overview, error) {
	var (
		out Overview
		err error
	)
	if out.Stats.TotalUsers, err = s.profiles.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if out.Stats.ActiveListings, err = s.listings.CountByStatus(ctx, model.StatusApproved); err != nil {
		return nil, fmt.Errorf("count approved: %w", err)
	}
	if out.Stats.ReportsCount, err = s.reports.Count(ctx); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pending, err := s.listings.ListByStatus(ctx, model.StatusPending, repository.PageQuery{})
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	out.Stats.PendingCount = pending.Total
	out.Pending = pending.Items
	return &out, nil
}

func (s *adminService) Pending(ctx context.Context) ([]model.Listing, error) {
	res, err := s.listings.ListByStatus(ctx, model.StatusPending, repository.PageQuery{})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (s *adminService) Users(ctx context.Context) ([]model.Profile, error) {
	return s.profiles.ListRecent(ctx, adminUsersLimit)
}

func (s *adminService) Reports(ctx context.Context) ([]model.Report, error) {
	return s.reports.ListRecent(ctx, adminReportsLimit)
}

func (s *adminService) Approve(ctx context.Context, listingID string) error {
	return s.setStatus(ctx, listingID, model.StatusApproved)
}

func (s *adminService) Reject(ctx context.Context, listingID string) error {
	return s.setStatus(ctx, listingID, model.StatusRejected)
}

func (s *adminService) setStatus(ctx context.Context, listingID string, status model.ListingStatus) error {
	if err := checkID(listingID); err != nil {
		return err
	}
	if err := s.listings.UpdateStatus(ctx, listingID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *adminService) Suspend(ctx context.Context, userID string) error {
	if err := checkID(userID); err != nil {
		return err
	}
	if err := s.profiles.SetSuspended(ctx, userID, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *adminService) RemoveListing(ctx context.Context, listingID string) error {
	if err := checkID(listingID); err != nil {
		return err
	}
	l, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.listings.Delete(ctx, listingID); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	// Images left behind here are unreferenced and get swept by the janitor.
	if s.store == nil {
		return nil
	}
	for _, u := range l.Images {
		key, err := s.store.KeyFromURL(u)
		if err != nil {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("listing_id", listingID).Str("key", key).Msg("delete image failed")
		}
	}
	return nil
}

func (s *adminService) Promote(ctx context.Context, email string) (*model.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email is required")
	}
	p, err := s.profiles.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.profiles.SetRole(ctx, p.ID, model.RoleAdmin); err != nil {
		return nil, err
	}
	p.Role = model.RoleAdmin
	return p, nil
}
