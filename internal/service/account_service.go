package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"hotel_reservation/internal/model"
	"hotel_reservation/internal/repository"
	"hotel_reservation/internal/utils"
)

var (
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUpperCase = errors.New("password must contain at least one upper-case letter")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrEmailTaken          = errors.New("email already in use by another account")
	ErrUserNotFound        = errors.New("user not found")
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so the two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// AccountService provides account, authentication and profile operations
type AccountService interface {
	CreateAccount(ctx context.Context, username, password, email string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.UserData, error)
	GetProfile(ctx context.Context, username string) (*model.ProfileData, error)
	UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) error
}

type accountService struct {
	userRepo repository.UserRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo repository.UserRepository) AccountService {
	return &accountService{userRepo: userRepo}
}

// hasUpperCase checks for a letter in the policy's A-Z class; accented
// uppercase does not count.
func hasUpperCase(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// validatePassword enforces the account password policy. Length counts
// characters, not bytes, and is checked before character classes so the
// caller sees errors in a stable order.
func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < 8 {
		return ErrPasswordTooShort
	}
	if !hasUpperCase(password) {
		return ErrPasswordNoUpperCase
	}
	return nil
}

// CreateAccount validates the password policy, hashes the password and
// inserts a new user with the default role. The insert is a single
// statement, so a failure leaves no partial row behind.
func (s *accountService) CreateAccount(ctx context.Context, username, password, email string) (*model.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	username = strings.TrimSpace(username)
	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		NameFull:     username, // full name starts as the username until the profile is updated
		Role:         model.RoleUser,
		Email:        strings.TrimSpace(email),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the identifying subset of user
// fields, never the stored hash.
func (s *accountService) Login(ctx context.Context, username, password string) (*model.UserData, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials // Password mismatch
	}

	return &model.UserData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		NameFull: user.NameFull,
		Role:     user.Role,
	}, nil
}

// GetProfile returns the mutable profile fields of a user
func (s *accountService) GetProfile(ctx context.Context, username string) (*model.ProfileData, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &model.ProfileData{Email: user.Email, NameFull: user.NameFull}, nil
}

// UpdateProfile applies the recognized fields of a partial update. The
// repository runs the whole update in one transaction.
func (s *accountService) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) error {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	var changes model.ProfileChanges
	if req.NameFull != nil {
		trimmed := strings.TrimSpace(*req.NameFull)
		changes.NameFull = &trimmed
	}
	if req.Email != nil {
		// No format validation here; the store only enforces uniqueness.
		trimmed := strings.TrimSpace(*req.Email)
		changes.Email = &trimmed
	}
	if req.NewPassword != nil && *req.NewPassword != "" {
		hashed, err := utils.HashPassword(*req.NewPassword)
		if err != nil {
			return fmt.Errorf("failed to hash new password: %w", err)
		}
		changes.PasswordHash = &hashed
	}

	if changes.Empty() {
		return nil
	}

	if err := s.userRepo.UpdateProfile(ctx, req.Username, changes); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update profile in repository: %w", err)
	}
	return nil
}
