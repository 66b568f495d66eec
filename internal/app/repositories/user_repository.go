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

// UserStore defines the interface for account storage operations
type UserStore interface {
	CreateIfAbsent(ctx context.Context, user *models.User) (created bool, err error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id int64, role models.RoleType) error
	Delete(ctx context.Context, id int64) error
	GetByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
}

// UserRepository handles database operations for accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateIfAbsent inserts an account unless one already exists for the email.
// Returns false without error when the email is taken: a duplicate sign-in is
// a soft outcome, not a failure.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	query := `
		INSERT INTO users (email, name, photo_url, phone_number, gender, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Name, user.PhotoURL, user.PhoneNumber, user.Gender, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error creating user: %w", err)
	}

	return true, nil
}

// GetByEmail retrieves an account by its email match key
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, photo_url, phone_number, gender, role, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.PhoneNumber,
		&user.Gender,
		&user.Role,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves an account by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, name, photo_url, phone_number, gender, role, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.PhoneNumber,
		&user.Gender,
		&user.Role,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetAll retrieves all accounts
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, email, name, photo_url, phone_number, gender, role, created_at
		FROM users
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

// GetByRole retrieves all accounts holding the given role
func (r *UserRepository) GetByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	query := `
		SELECT id, email, name, photo_url, phone_number, gender, role, created_at
		FROM users
		WHERE role = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]*models.User, error) {
	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.PhotoURL,
			&user.PhoneNumber,
			&user.Gender,
			&user.Role,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateRole sets an account's role. Unknown ids fail with not found instead
// of reporting zero affected rows.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.RoleType) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Delete removes an account by ID
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
