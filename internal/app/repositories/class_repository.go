package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
)

// ClassStore defines the interface for catalog storage operations
type ClassStore interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetAll(ctx context.Context) ([]*models.Class, error)
	GetByInstructorEmail(ctx context.Context, email string) ([]*models.Class, error)
	GetByStatus(ctx context.Context, status models.ClassStatus) ([]*models.Class, error)
	GetPopular(ctx context.Context, limit int) ([]*models.Class, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Class, error)
	UpdateDetails(ctx context.Context, id int64, name *string, priceCents *int64, availableSeats *int) error
	UpdateStatus(ctx context.Context, id int64, status models.ClassStatus) error
	UpdateFeedback(ctx context.Context, id int64, feedback string) error
}

const classColumns = `id, name, image_url, instructor_name, instructor_email, price_cents, available_seats, enrolled_students, status, feedback, created_at`

// ClassRepository handles database operations for class offerings
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
	}
}

// Create inserts a new offering. New classes always start pending.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (name, image_url, instructor_name, instructor_email, price_cents, available_seats, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, enrolled_students, created_at
	`

	err := r.db.QueryRow(ctx, query,
		class.Name, class.ImageURL, class.InstructorName, class.InstructorEmail,
		class.PriceCents, class.AvailableSeats, models.StatusPending,
	).Scan(&class.ID, &class.EnrolledStudents, &class.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating class: %w", err)
	}
	class.Status = models.StatusPending

	return nil
}

// GetByID retrieves an offering by ID
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	var class models.Class
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.ImageURL,
		&class.InstructorName,
		&class.InstructorEmail,
		&class.PriceCents,
		&class.AvailableSeats,
		&class.EnrolledStudents,
		&class.Status,
		&class.Feedback,
		&class.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return &class, nil
}

// GetAll retrieves every offering regardless of status
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// GetByInstructorEmail retrieves all offerings created by an instructor
func (r *ClassRepository) GetByInstructorEmail(ctx context.Context, email string) ([]*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE instructor_email = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// GetByStatus retrieves all offerings in a moderation state
func (r *ClassRepository) GetByStatus(ctx context.Context, status models.ClassStatus) ([]*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE status = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// GetPopular retrieves the most enrolled approved offerings
func (r *ClassRepository) GetPopular(ctx context.Context, limit int) ([]*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE status = $1 ORDER BY enrolled_students DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, models.StatusApproved, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// GetByIDs retrieves offerings matching the given id list
func (r *ClassRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

func scanClasses(rows pgx.Rows) ([]*models.Class, error) {
	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.ImageURL,
			&class.InstructorName,
			&class.InstructorEmail,
			&class.PriceCents,
			&class.AvailableSeats,
			&class.EnrolledStudents,
			&class.Status,
			&class.Feedback,
			&class.CreatedAt,
		); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// UpdateDetails applies a partial-field merge to an offering. Nil fields keep
// their stored values.
func (r *ClassRepository) UpdateDetails(ctx context.Context, id int64, name *string, priceCents *int64, availableSeats *int) error {
	query := `
		UPDATE classes
		SET name = COALESCE($1, name),
		    price_cents = COALESCE($2, price_cents),
		    available_seats = COALESCE($3, available_seats)
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, name, priceCents, availableSeats, id)
	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// UpdateStatus sets the moderation state of an offering
func (r *ClassRepository) UpdateStatus(ctx context.Context, id int64, status models.ClassStatus) error {
	query := `UPDATE classes SET status = $1 WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating class status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// UpdateFeedback attaches an admin note to an offering
func (r *ClassRepository) UpdateFeedback(ctx context.Context, id int64, feedback string) error {
	query := `UPDATE classes SET feedback = $1 WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, feedback, id)
	if err != nil {
		return fmt.Errorf("error updating class feedback: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
