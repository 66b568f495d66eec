package services

import (
	"context"

	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/repositories"
)

// InstructorService aggregates instructor profiles with their catalog footprint
type InstructorService struct {
	userRepo  repositories.UserStore
	classRepo repositories.ClassStore
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(userRepo repositories.UserStore, classRepo repositories.ClassStore) *InstructorService {
	return &InstructorService{
		userRepo:  userRepo,
		classRepo: classRepo,
	}
}

// ListInstructors returns every account holding the instructor role together
// with its class and enrollment totals. Instructors with no classes yet
// appear with zero totals.
func (s *InstructorService) ListInstructors(ctx context.Context) ([]*models.InstructorSummary, error) {
	instructors, err := s.userRepo.GetByRole(ctx, models.RoleInstructor)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.InstructorSummary, 0, len(instructors))
	for _, instructor := range instructors {
		classes, err := s.classRepo.GetByInstructorEmail(ctx, instructor.Email)
		if err != nil {
			return nil, err
		}

		summary := &models.InstructorSummary{
			Name:        instructor.Name,
			Email:       instructor.Email,
			PhotoURL:    instructor.PhotoURL,
			PhoneNumber: instructor.PhoneNumber,
			Gender:      instructor.Gender,
		}
		for _, class := range classes {
			summary.TotalClasses++
			summary.TotalEnrollmentStudents += class.EnrolledStudents
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
