package services

import (
	"context"

	"github.com/mhasan/dancecamp/internal/app/auth"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/repositories"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
	"github.com/mhasan/dancecamp/internal/pkg/logger"
)

// popularClassLimit is how many classes the popularity listing returns
const popularClassLimit = 6

// ClassService handles catalog operations
type ClassService struct {
	classRepo repositories.ClassStore
	authz     *auth.AuthorizationService
}

// NewClassService creates a new class service instance
func NewClassService(classRepo repositories.ClassStore, authz *auth.AuthorizationService) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		authz:     authz,
	}
}

// CreateClass adds a new offering to the catalog. New offerings always start
// in pending status and wait for admin moderation.
func (s *ClassService) CreateClass(ctx context.Context, class *models.Class) error {
	class.Status = models.StatusPending
	class.EnrolledStudents = 0

	if err := s.classRepo.Create(ctx, class); err != nil {
		return err
	}

	logger.Info().
		Int64("classId", class.ID).
		Str("instructorEmail", class.InstructorEmail).
		Msg("Created class offering")
	return nil
}

// GetAllClasses returns every offering regardless of status
func (s *ClassService) GetAllClasses(ctx context.Context) ([]*models.Class, error) {
	return s.classRepo.GetAll(ctx)
}

// GetApprovedClasses returns the public catalog
func (s *ClassService) GetApprovedClasses(ctx context.Context) ([]*models.Class, error) {
	return s.classRepo.GetByStatus(ctx, models.StatusApproved)
}

// GetPopularClasses returns the most enrolled approved offerings
func (s *ClassService) GetPopularClasses(ctx context.Context) ([]*models.Class, error) {
	return s.classRepo.GetPopular(ctx, popularClassLimit)
}

// GetClassByID returns a single offering
func (s *ClassService) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// GetClassesByInstructor returns the offerings owned by an instructor
func (s *ClassService) GetClassesByInstructor(ctx context.Context, email string) ([]*models.Class, error) {
	return s.classRepo.GetByInstructorEmail(ctx, email)
}

// UpdateClass applies a partial-field merge to an offering owned by the
// caller. Nil fields are left untouched.
func (s *ClassService) UpdateClass(ctx context.Context, id int64, callerEmail string, name *string, priceCents *int64, availableSeats *int) error {
	if err := s.authz.ValidateClassOwnership(ctx, id, callerEmail); err != nil {
		return err
	}

	return s.classRepo.UpdateDetails(ctx, id, name, priceCents, availableSeats)
}

// ApplyStatusDecision resolves a moderation decision into the resulting
// class status. Decisions outside the closed enum are rejected.
func (s *ClassService) ApplyStatusDecision(ctx context.Context, id int64, decision models.StatusDecision) (models.ClassStatus, error) {
	status, ok := decision.Apply()
	if !ok {
		return "", apperrors.NewBadRequestError("unknown status decision")
	}

	if err := s.classRepo.UpdateStatus(ctx, id, status); err != nil {
		return "", err
	}

	logger.Info().Int64("classId", id).Str("status", string(status)).Msg("Moderated class offering")
	return status, nil
}

// SetFeedback attaches an admin moderation note to an offering
func (s *ClassService) SetFeedback(ctx context.Context, id int64, feedback string) error {
	return s.classRepo.UpdateFeedback(ctx, id, feedback)
}
