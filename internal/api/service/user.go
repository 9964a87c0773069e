package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/taskdeck/taskdeck/internal/api/domain"
	"github.com/taskdeck/taskdeck/internal/api/store"
	"github.com/taskdeck/taskdeck/pkg/cryptox"
)

var (
	ErrPasswordConfirm  = errors.New("password_confirm_mismatch")
	ErrWrongOldPassword = errors.New("wrong_old_password")
)

// UserService covers the user admin endpoints. Users created here start
// without a password; SetPassword gives them one so they can log in.
type UserService struct {
	Store store.Store
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// CreateUser adds a user without credentials. Returns ErrEmailTaken if the
// email is already in use and ErrInvalidEmail if it does not parse.
func (s *UserService) CreateUser(ctx context.Context, name, email, phoneNumber string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, ErrInvalidEmail
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Name:        strings.TrimSpace(name),
		Email:       email,
		PhoneNumber: strings.TrimSpace(phoneNumber),
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return user, nil
}

// UpdateUser changes the user's name and phone number. Email is immutable; it
// is the login identity and baked into every issued token.
func (s *UserService) UpdateUser(ctx context.Context, userID int64, name, phoneNumber string) (domain.User, error) {
	if err := s.Store.Users().UpdateUser(ctx, userID, strings.TrimSpace(name), strings.TrimSpace(phoneNumber)); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	return s.Store.Users().DeleteUser(ctx, userID)
}

// SetPassword gives a user a password without requiring the old one. It is
// meant for accounts created through CreateUser that cannot log in yet.
func (s *UserService) SetPassword(ctx context.Context, userID int64, password, confirm string) error {
	if password != confirm {
		return ErrPasswordConfirm
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}

// ChangePassword replaces the caller's password after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, password, confirm string) error {
	if password != confirm {
		return ErrPasswordConfirm
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == "" || cryptox.VerifyPassword(oldPassword, user.PasswordHash) != nil {
		return ErrWrongOldPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}
	return s.Store.Users().UpdatePasswordHash(ctx, userID, hash)
}
