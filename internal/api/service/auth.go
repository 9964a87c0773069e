package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/api/domain"
	"github.com/taskdeck/taskdeck/internal/api/registry"
	"github.com/taskdeck/taskdeck/internal/api/store"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
	"github.com/taskdeck/taskdeck/pkg/jwtx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// MinPasswordLength is the shortest password accepted on registration and
// password changes.
const MinPasswordLength = 6

var (
	ErrEmailTaken     = errors.New("email_taken")
	ErrUnknownEmail   = errors.New("unknown_email")
	ErrBadCredentials = errors.New("bad_credentials")
	ErrTokenMissing   = errors.New("token_missing")
	ErrInvalidRefresh = errors.New("invalid_refresh_token")
	ErrInvalidToken   = errors.New("invalid_token")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrWeakPassword   = errors.New("weak_password")
)

// AuthService implements registration, login and the refresh token lifecycle.
//
// Access and refresh tokens are signed with separate secrets. Refresh tokens
// are additionally tracked in the Registry, so a refresh token is only
// honoured while its session has not been logged out.
type AuthService struct {
	Store    store.Store
	Registry registry.Registry

	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier

	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	RefreshedAccessTTL time.Duration
}

// Register creates a new user account and signs it in, returning a fresh
// token pair. Returns ErrEmailTaken if the email is already registered.
func (s *AuthService) Register(ctx context.Context, name, email, phoneNumber, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.TokenPair{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return domain.TokenPair{}, ErrWeakPassword
	}

	// Friendly pre-check. The UNIQUE constraint below is what actually
	// guarantees no duplicate accounts when two registrations race.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.TokenPair{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.TokenPair{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.TokenPair{}, err
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.TokenPair{}, ErrEmailTaken
		}
		return domain.TokenPair{}, err
	}

	l.Info("user registered", slog.Int64("user_id", user.ID))
	return s.issuePair(ctx, user)
}

// Login verifies the credentials and returns a fresh token pair. The error
// distinguishes an unknown email from a wrong password, matching the
// registration flow the frontend drives users through.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUnknownEmail
		}
		return domain.TokenPair{}, err
	}

	// Accounts created through the user admin endpoints have no password
	// until one is set; they cannot log in yet.
	if user.PasswordHash == "" {
		return domain.TokenPair{}, ErrBadCredentials
	}
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.Int64("user_id", user.ID))
		return domain.TokenPair{}, ErrBadCredentials
	}

	l.Info("user logged in", slog.Int64("user_id", user.ID))
	return s.issuePair(ctx, user)
}

// Refresh exchanges a live refresh token for a new short-lived access token.
// The refresh token itself stays valid and registered; it is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if refreshToken == "" {
		return domain.TokenPair{}, ErrTokenMissing
	}

	live, err := s.Registry.Contains(ctx, refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !live {
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	// Registry membership and cryptographic validity fail differently; a
	// token we issued but whose session ended is not the same as a token we
	// never issued.
	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		l.Info("refresh rejected", slog.String("reason", err.Error()))
		return domain.TokenPair{}, ErrInvalidToken
	}

	access, err := s.AccessSigner.Sign(claims.Reissue(s.RefreshedAccessTTL, time.Now()))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access}, nil
}

// Logout revokes the refresh token. It succeeds whether or not the token was
// ever registered; an empty token removes nothing, so logging out twice or
// with no session at all is harmless.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.Registry.Remove(ctx, refreshToken)
}

func (s *AuthService) issuePair(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	now := time.Now()

	access, err := s.AccessSigner.Sign(jwtx.NewClaims(user.ID, user.Email, user.Name, user.PhoneNumber, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.RefreshSigner.Sign(jwtx.NewClaims(user.ID, user.Email, user.Name, user.PhoneNumber, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := s.Registry.Add(ctx, refresh); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
