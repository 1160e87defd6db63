package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/auth"
	"marketplace/internal/model"
	"marketplace/internal/repository"
)

// SignUpInput is the body of a sign-up request.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"max=32"`
	Role     string `json:"role" validate:"omitempty,oneof=resident service_provider"`
}

// SignInInput is the body of a sign-in request.
type SignInInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is returned on successful sign-up or sign-in.
type Session struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	Profile     *model.Profile `json:"profile"`
}

// AuthService defines account and session use cases.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*Session, error)
	SignIn(ctx context.Context, in SignInInput) (*Session, error)
	// SignOut ends the session the claims were issued for.
	SignOut(ctx context.Context, claims *auth.Claims) error
	// Authenticate verifies a bearer token and returns its claims.
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	// Me returns the profile of userID.
	Me(ctx context.Context, userID string) (*model.Profile, error)
}

type authService struct {
	creds    repository.CredentialRepository
	profiles repository.ProfileRepository
	tokens   *auth.Tokens
	sessions *auth.Sessions
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(creds repository.CredentialRepository, profiles repository.ProfileRepository, tokens *auth.Tokens, sessions *auth.Sessions) AuthService {
	return &authService{
		creds:    creds,
		profiles: profiles,
		tokens:   tokens,
		sessions: sessions,
		now:      time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, in SignUpInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	id := uuid.New().String()
	if err := s.creds.Create(ctx, &model.Credential{
		ID:           id,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
	}); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email %w", ErrConflict)
		}
		return nil, fmt.Errorf("create credential: %w", err)
	}

	profile, err := s.profiles.Upsert(ctx, &model.Profile{
		ID:        id,
		FullName:  in.FullName,
		Email:     in.Email,
		Phone:     in.Phone,
		Role:      model.Role(orDefault(in.Role, string(model.RoleResident))),
		CreatedAt: now,
	})
	if err != nil {
		// Drop the credential so the email can sign up again.
		if derr := s.creds.Delete(context.WithoutCancel(ctx), id); derr != nil {
			return nil, fmt.Errorf("upsert profile: %w (credential cleanup: %v)", err, derr)
		}
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	return s.issue(profile)
}

func (s *authService) SignIn(ctx context.Context, in SignInInput) (*Session, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	cred, err := s.creds.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.CheckPassword(cred.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	profile, err := s.profiles.FindByID(ctx, cred.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if profile.Suspended {
		return nil, ErrSuspended
	}

	return s.issue(profile)
}

func (s *authService) issue(p *model.Profile) (*Session, error) {
	token, claims, err := s.tokens.Issue(p.ID, string(p.Role))
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		Profile:     p,
	}, nil
}

func (s *authService) SignOut(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return ErrUnauthorized
	}
	if err := s.sessions.Revoke(ctx, claims); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	revoked, err := s.sessions.Revoked(ctx, claims)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if revoked {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
