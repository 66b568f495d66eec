package services

import (
	"context"
	"errors"

	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/repositories"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
	"github.com/mhasan/dancecamp/internal/pkg/logger"
)

// UserService handles account operations
type UserService struct {
	userRepo repositories.UserStore
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.UserStore) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// RegisterUser records an account on first sign-in. Registering an email
// that already exists is not an error; the existing account is kept as is
// and created reports false.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User) (created bool, err error) {
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	if !models.ValidRole(user.Role) {
		return false, apperrors.NewBadRequestError("unknown role value")
	}

	created, err = s.userRepo.CreateIfAbsent(ctx, user)
	if err != nil {
		return false, err
	}

	if created {
		logger.Info().Str("email", user.Email).Msg("Registered new account")
	}
	return created, nil
}

// GetAllUsers returns every registered account
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// GetUserByEmail returns the account registered under an email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// UpdateRole changes an account's role. The role value is a closed enum;
// values outside it are rejected.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role models.RoleType) error {
	if !models.ValidRole(role) {
		return apperrors.NewBadRequestError("unknown role value")
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	logger.Info().Int64("userId", id).Str("role", string(role)).Msg("Updated account role")
	return nil
}

// DeleteUser removes an account
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

// HasRole reports whether the account registered under email holds the role.
// An unregistered email holds no role.
func (s *UserService) HasRole(ctx context.Context, email string, role models.RoleType) (bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == role, nil
}
