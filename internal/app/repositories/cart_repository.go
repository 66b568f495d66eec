package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
	"github.com/mhasan/dancecamp/internal/pkg/dberrors"
)

// CartStore defines the interface for selected-class storage operations
type CartStore interface {
	CreateIfAbsent(ctx context.Context, entry *models.CartEntry) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*models.CartEntry, error)
	GetByStudentEmail(ctx context.Context, email string) ([]*models.CartEntry, error)
	Delete(ctx context.Context, id int64) error
}

// CartRepository handles database operations for cart entries
type CartRepository struct {
	db *pgxpool.Pool
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{
		db: db,
	}
}

// CreateIfAbsent inserts a cart entry unless the student already selected the
// class. The (student_email, class_id) unique constraint carries the
// duplicate detection; a violation maps to false without error.
func (r *CartRepository) CreateIfAbsent(ctx context.Context, entry *models.CartEntry) (bool, error) {
	query := `
		INSERT INTO cart_entries (student_email, class_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, entry.StudentEmail, entry.ClassID).Scan(&entry.ID, &entry.CreatedAt)
	if dberrors.IsUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error creating cart entry: %w", err)
	}

	return true, nil
}

// GetByID retrieves a cart entry by ID
func (r *CartRepository) GetByID(ctx context.Context, id int64) (*models.CartEntry, error) {
	query := `
		SELECT id, student_email, class_id, created_at
		FROM cart_entries
		WHERE id = $1
	`

	var entry models.CartEntry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.StudentEmail,
		&entry.ClassID,
		&entry.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrCartEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving cart entry: %w", err)
	}

	return &entry, nil
}

// GetByStudentEmail retrieves all cart entries for a student
func (r *CartRepository) GetByStudentEmail(ctx context.Context, email string) ([]*models.CartEntry, error) {
	query := `
		SELECT id, student_email, class_id, created_at
		FROM cart_entries
		WHERE student_email = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.CartEntry
	for rows.Next() {
		var entry models.CartEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.StudentEmail,
			&entry.ClassID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Delete removes a cart entry by ID
func (r *CartRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM cart_entries WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting cart entry: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCartEntryNotFound
	}

	return nil
}
