package services

import (
	"context"

	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/repositories"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
)

// CartService handles a student's selected classes
type CartService struct {
	cartRepo  repositories.CartStore
	classRepo repositories.ClassStore
}

// NewCartService creates a new cart service instance
func NewCartService(cartRepo repositories.CartStore, classRepo repositories.ClassStore) *CartService {
	return &CartService{
		cartRepo:  cartRepo,
		classRepo: classRepo,
	}
}

// SelectClass adds a class to the student's cart. Selecting a class that is
// already in the cart is not an error; the existing entry is kept and
// created reports false.
func (s *CartService) SelectClass(ctx context.Context, studentEmail string, classID int64) (entry *models.CartEntry, created bool, err error) {
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return nil, false, err
	}

	entry = &models.CartEntry{
		StudentEmail: studentEmail,
		ClassID:      classID,
	}

	created, err = s.cartRepo.CreateIfAbsent(ctx, entry)
	if err != nil {
		return nil, false, err
	}

	return entry, created, nil
}

// ListSelectedClasses returns the student's cart entries
func (s *CartService) ListSelectedClasses(ctx context.Context, studentEmail string) ([]*models.CartEntry, error) {
	return s.cartRepo.GetByStudentEmail(ctx, studentEmail)
}

// RemoveEntry deletes a cart entry owned by the caller
func (s *CartService) RemoveEntry(ctx context.Context, id int64, callerEmail string) error {
	entry, err := s.cartRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.StudentEmail != callerEmail {
		return apperrors.NewForbiddenError("cart entry belongs to another student")
	}

	return s.cartRepo.Delete(ctx, id)
}
