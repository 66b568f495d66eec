package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/repositories"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
	"github.com/mhasan/dancecamp/internal/pkg/logger"
	"github.com/mhasan/dancecamp/internal/pkg/payment"
)

// SettlementService coordinates the payment settlement workflow: record the
// payment, clear the settled cart entries and move one seat per class from
// available to enrolled. All three steps run inside one database transaction,
// so a failure at any point leaves no partial state behind.
type SettlementService struct {
	paymentRepo repositories.SettlementStore
	classRepo   repositories.ClassStore
	provider    payment.Provider
}

// NewSettlementService creates a new settlement service instance
func NewSettlementService(paymentRepo repositories.SettlementStore, classRepo repositories.ClassStore, provider payment.Provider) *SettlementService {
	return &SettlementService{
		paymentRepo: paymentRepo,
		classRepo:   classRepo,
		provider:    provider,
	}
}

// CreateIntent asks the payment provider for a client-confirmable charge
// handle over the given amount.
func (s *SettlementService) CreateIntent(ctx context.Context, amountCents int64, currency string) (*payment.Intent, error) {
	if amountCents <= 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCharge, "charge amount must be positive")
	}

	intent, err := s.provider.CreateIntent(ctx, amountCents, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent, nil
}

// validateCharge rejects charges the settlement engine must never record
func (s *SettlementService) validateCharge(charge payment.ConfirmedCharge) error {
	if strings.TrimSpace(charge.ID) == "" {
		return apperrors.NewCustomError(apperrors.ErrInvalidCharge, "charge id is required")
	}
	if charge.AmountCents <= 0 {
		return apperrors.NewCustomError(apperrors.ErrInvalidCharge, "charge amount must be positive")
	}
	if charge.Currency != "usd" {
		return apperrors.NewCustomError(apperrors.ErrInvalidCharge, fmt.Sprintf("unsupported currency %q", charge.Currency))
	}
	return nil
}

// Settle applies a confirmed charge: it records the payment, deletes the
// referenced cart entries and enrolls the student into each class that still
// has a seat. Classes whose seats ran out between charge and settlement are
// reported in OverbookedClassIDs without blocking the rest of the batch.
//
// The charge id is the idempotency key. Settling the same charge twice
// returns the outcome of the first application with AlreadySettled set, and
// never double-enrolls or double-records.
func (s *SettlementService) Settle(ctx context.Context, studentEmail string, charge payment.ConfirmedCharge, classIDs, cartEntryIDs []int64) (*models.SettlementResult, error) {
	if err := s.validateCharge(charge); err != nil {
		return nil, err
	}
	if len(classIDs) == 0 {
		return nil, apperrors.NewBadRequestError("at least one class id is required")
	}

	var result *models.SettlementResult

	err := s.paymentRepo.InSettlement(ctx, func(ctx context.Context, ops repositories.SettlementOps) error {
		missing, err := ops.MissingClassIDs(ctx, classIDs)
		if err != nil {
			return fmt.Errorf("failed to verify class ids: %w", err)
		}
		if len(missing) > 0 {
			return apperrors.NewCustomError(apperrors.ErrClassNotFound,
				fmt.Sprintf("unknown class ids: %v", missing))
		}

		record := &models.Payment{
			StudentEmail: studentEmail,
			AmountCents:  charge.AmountCents,
			Currency:     charge.Currency,
			ChargeID:     charge.ID,
			ClassIDs:     classIDs,
			CartEntryIDs: cartEntryIDs,
			PaidAt:       time.Now().UTC(),
		}

		inserted, err := ops.InsertPayment(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		if !inserted {
			// Replay of an already settled charge. Return the outcome the
			// first application recorded.
			prior, err := ops.PaymentByChargeID(ctx, charge.ID)
			if err != nil {
				return fmt.Errorf("failed to load settled payment: %w", err)
			}
			result = &models.SettlementResult{
				PaymentID:           prior.ID,
				CartRemovedCount:    prior.CartRemovedCount,
				ClassesUpdatedCount: prior.ClassesUpdated,
				OverbookedClassIDs:  prior.OverbookedClassIDs,
				AlreadySettled:      true,
			}
			return nil
		}

		cartRemoved, err := ops.RemoveCartEntries(ctx, cartEntryIDs)
		if err != nil {
			return fmt.Errorf("failed to clear cart entries: %w", err)
		}

		classesUpdated := 0
		overbooked := []int64{}
		for _, classID := range classIDs {
			enrolled, err := ops.EnrollStudent(ctx, classID)
			if err != nil {
				return fmt.Errorf("failed to enroll into class %d: %w", classID, err)
			}
			if enrolled {
				classesUpdated++
			} else {
				overbooked = append(overbooked, classID)
			}
		}

		if err := ops.RecordOutcome(ctx, record.ID, cartRemoved, classesUpdated, overbooked); err != nil {
			return err
		}

		result = &models.SettlementResult{
			PaymentID:           record.ID,
			CartRemovedCount:    cartRemoved,
			ClassesUpdatedCount: classesUpdated,
			OverbookedClassIDs:  overbooked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.OverbookedClassIDs) > 0 {
		logger.Warn().
			Str("studentEmail", studentEmail).
			Str("chargeId", charge.ID).
			Ints64("classIds", result.OverbookedClassIDs).
			Msg("Settlement completed with overbooked classes")
	}

	return result, nil
}

// ListPayments returns a student's payment history, newest first
func (s *SettlementService) ListPayments(ctx context.Context, studentEmail string) ([]*models.Payment, error) {
	return s.paymentRepo.GetByStudentEmail(ctx, studentEmail)
}

// ListEnrollments returns the classes a student has paid for, each paired
// with its payment date. A class purchased more than once is reported only
// for the earliest payment that includes it.
func (s *SettlementService) ListEnrollments(ctx context.Context, studentEmail string) ([]*models.Enrollment, error) {
	payments, err := s.paymentRepo.GetByStudentEmailAsc(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return []*models.Enrollment{}, nil
	}

	paidAt := make(map[int64]time.Time)
	var order []int64
	for _, p := range payments {
		for _, classID := range p.ClassIDs {
			if _, seen := paidAt[classID]; !seen {
				paidAt[classID] = p.PaidAt
				order = append(order, classID)
			}
		}
	}

	classes, err := s.classRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*models.Class, len(classes))
	for _, class := range classes {
		byID[class.ID] = class
	}

	enrollments := make([]*models.Enrollment, 0, len(order))
	for _, classID := range order {
		class, ok := byID[classID]
		if !ok {
			// Class removed after purchase; the payment record keeps the id
			// but there is nothing to show.
			continue
		}
		enrollments = append(enrollments, &models.Enrollment{
			Class:       *class,
			PaymentDate: paidAt[classID],
		})
	}

	sort.SliceStable(enrollments, func(i, j int) bool {
		return enrollments[i].PaymentDate.Before(enrollments[j].PaymentDate)
	})

	return enrollments, nil
}
