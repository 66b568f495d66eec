package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/db"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
)

// SettlementOps are the storage operations available inside a settlement
// transaction. Everything executed through an ops value either commits as a
// whole or leaves no trace.
type SettlementOps interface {
	// InsertPayment durably records a payment. Returns false when a payment
	// with the same charge id already exists (the charge id is the
	// idempotency key) without inserting anything.
	InsertPayment(ctx context.Context, p *models.Payment) (inserted bool, err error)
	// PaymentByChargeID loads the payment recorded for a charge.
	PaymentByChargeID(ctx context.Context, chargeID string) (*models.Payment, error)
	// RemoveCartEntries deletes the given entries and reports how many rows
	// actually existed. Missing rows are not an error.
	RemoveCartEntries(ctx context.Context, ids []int64) (int64, error)
	// EnrollStudent moves one seat from available to enrolled on a class.
	// Both counters change in a single conditional update guarded by
	// available_seats >= 1; returns false when the guard fails.
	EnrollStudent(ctx context.Context, classID int64) (bool, error)
	// MissingClassIDs returns the subset of ids with no matching class row.
	MissingClassIDs(ctx context.Context, ids []int64) ([]int64, error)
	// RecordOutcome stores the per-step counts on the payment row so a
	// replay can return the original result.
	RecordOutcome(ctx context.Context, paymentID int64, cartRemoved int64, classesUpdated int, overbooked []int64) error
}

// SettlementStore runs settlement work atomically and serves payment reads.
type SettlementStore interface {
	InSettlement(ctx context.Context, fn func(ctx context.Context, ops SettlementOps) error) error
	GetByStudentEmail(ctx context.Context, email string) ([]*models.Payment, error)
	GetByStudentEmailAsc(ctx context.Context, email string) ([]*models.Payment, error)
}

const paymentColumns = `id, student_email, amount_cents, currency, charge_id, class_ids, cart_entry_ids, paid_at, cart_removed_count, classes_updated_count, overbooked_class_ids`

// PaymentRepository handles database operations for payments and the
// settlement transaction
type PaymentRepository struct {
	db *db.PostgresDB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(database *db.PostgresDB) *PaymentRepository {
	return &PaymentRepository{
		db: database,
	}
}

// InSettlement executes fn within a single database transaction. The ops
// value it receives is bound to that transaction.
func (r *PaymentRepository) InSettlement(ctx context.Context, fn func(ctx context.Context, ops SettlementOps) error) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &settlementOps{tx: tx})
	})
}

// GetByStudentEmail retrieves a student's payments, newest first
func (r *PaymentRepository) GetByStudentEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	return r.listByStudent(ctx, email, "DESC")
}

// GetByStudentEmailAsc retrieves a student's payments, oldest first
func (r *PaymentRepository) GetByStudentEmailAsc(ctx context.Context, email string) ([]*models.Payment, error) {
	return r.listByStudent(ctx, email, "ASC")
}

func (r *PaymentRepository) listByStudent(ctx context.Context, email, direction string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE student_email = $1 ORDER BY paid_at ` + direction + `, id ` + direction

	rows, err := r.db.Pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.StudentEmail,
		&payment.AmountCents,
		&payment.Currency,
		&payment.ChargeID,
		&payment.ClassIDs,
		&payment.CartEntryIDs,
		&payment.PaidAt,
		&payment.CartRemovedCount,
		&payment.ClassesUpdated,
		&payment.OverbookedClassIDs,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// settlementOps implements SettlementOps against an open pgx transaction
type settlementOps struct {
	tx pgx.Tx
}

func (o *settlementOps) InsertPayment(ctx context.Context, p *models.Payment) (bool, error) {
	query := `
		INSERT INTO payments (student_email, amount_cents, currency, charge_id, class_ids, cart_entry_ids, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (charge_id) DO NOTHING
		RETURNING id
	`

	err := o.tx.QueryRow(ctx, query,
		p.StudentEmail, p.AmountCents, p.Currency, p.ChargeID, p.ClassIDs, p.CartEntryIDs, p.PaidAt,
	).Scan(&p.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error inserting payment: %w", err)
	}

	return true, nil
}

func (o *settlementOps) PaymentByChargeID(ctx context.Context, chargeID string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE charge_id = $1`

	payment, err := scanPayment(o.tx.QueryRow(ctx, query, chargeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving payment by charge id: %w", err)
	}

	return payment, nil
}

func (o *settlementOps) RemoveCartEntries(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM cart_entries WHERE id = ANY($1)`

	cmdTag, err := o.tx.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("error removing cart entries: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

func (o *settlementOps) EnrollStudent(ctx context.Context, classID int64) (bool, error) {
	query := `
		UPDATE classes
		SET enrolled_students = enrolled_students + 1,
		    available_seats = available_seats - 1
		WHERE id = $1 AND available_seats >= 1
	`

	cmdTag, err := o.tx.Exec(ctx, query, classID)
	if err != nil {
		return false, fmt.Errorf("error enrolling student on class %d: %w", classID, err)
	}

	return cmdTag.RowsAffected() == 1, nil
}

func (o *settlementOps) MissingClassIDs(ctx context.Context, ids []int64) ([]int64, error) {
	query := `SELECT id FROM classes WHERE id = ANY($1)`

	rows, err := o.tx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

func (o *settlementOps) RecordOutcome(ctx context.Context, paymentID int64, cartRemoved int64, classesUpdated int, overbooked []int64) error {
	query := `
		UPDATE payments
		SET cart_removed_count = $2,
		    classes_updated_count = $3,
		    overbooked_class_ids = $4
		WHERE id = $1
	`

	_, err := o.tx.Exec(ctx, query, paymentID, cartRemoved, classesUpdated, overbooked)
	if err != nil {
		return fmt.Errorf("error recording settlement outcome: %w", err)
	}

	return nil
}
