package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/repositories"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
	"github.com/mhasan/dancecamp/internal/pkg/logger"
)

// AuthorizationService handles authorization operations. Role checks always
// read the stored account so a role change takes effect without waiting for
// token expiry.
type AuthorizationService struct {
	userRepo  repositories.UserStore
	classRepo repositories.ClassStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.UserStore, classRepo repositories.ClassStore) *AuthorizationService {
	return &AuthorizationService{
		userRepo:  userRepo,
		classRepo: classRepo,
	}
}

// HasRole checks whether the account behind the email holds the role.
// Exact match only: admin does not implicitly pass an instructor check.
func (s *AuthorizationService) HasRole(ctx context.Context, email string, role models.RoleType) (bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, nil
		}
		logger.Error().Err(err).Str("email", email).Msg("Error getting user by email in HasRole")
		return false, err
	}

	return user.Role == role, nil
}

// RequireRole fails with permission denied unless the stored role matches.
// A missing account is indistinguishable from a role mismatch to the caller.
func (s *AuthorizationService) RequireRole(ctx context.Context, email string, role models.RoleType) error {
	ok, err := s.HasRole(ctx, email, role)
	if err != nil {
		return fmt.Errorf("failed to check role: %w", err)
	}

	if !ok {
		return apperrors.ErrPermissionDenied
	}

	return nil
}

// CanModifyClass checks whether the caller created the class offering
func (s *AuthorizationService) CanModifyClass(ctx context.Context, classID int64, email string) (bool, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return false, err
	}

	return class.InstructorEmail == email, nil
}

// ValidateClassOwnership validates that the caller owns the class or returns
// an error.
func (s *AuthorizationService) ValidateClassOwnership(ctx context.Context, classID int64, email string) error {
	canModify, err := s.CanModifyClass(ctx, classID, email)
	if err != nil {
		return err
	}

	if !canModify {
		return apperrors.ErrPermissionDenied
	}

	return nil
}
