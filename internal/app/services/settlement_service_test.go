package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/app/repositories"
	"github.com/mhasan/dancecamp/internal/pkg/apperrors"
	"github.com/mhasan/dancecamp/internal/pkg/payment"
)

// fakeSettlementStore keeps payments, cart entries and seat counters in
// memory and applies the same guards the database enforces: unique charge
// ids and conditional seat decrements.
type fakeSettlementStore struct {
	payments    map[string]*models.Payment // keyed by charge id
	nextID      int64
	cartEntries map[int64]bool
	seats       map[int64]int // class id -> available seats
	enrolled    map[int64]int // class id -> enrolled students
	failInsert  error
}

func newFakeSettlementStore() *fakeSettlementStore {
	return &fakeSettlementStore{
		payments:    make(map[string]*models.Payment),
		nextID:      1,
		cartEntries: make(map[int64]bool),
		seats:       make(map[int64]int),
		enrolled:    make(map[int64]int),
	}
}

func (f *fakeSettlementStore) addClass(id int64, seats int) {
	f.seats[id] = seats
}

func (f *fakeSettlementStore) addCartEntry(id int64) {
	f.cartEntries[id] = true
}

func (f *fakeSettlementStore) InSettlement(ctx context.Context, fn func(ctx context.Context, ops repositories.SettlementOps) error) error {
	// The fake applies operations directly; rollback coverage lives in the
	// database layer.
	return fn(ctx, f)
}

func (f *fakeSettlementStore) GetByStudentEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	return f.listByStudent(email, false), nil
}

func (f *fakeSettlementStore) GetByStudentEmailAsc(ctx context.Context, email string) ([]*models.Payment, error) {
	return f.listByStudent(email, true), nil
}

func (f *fakeSettlementStore) listByStudent(email string, asc bool) []*models.Payment {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.StudentEmail == email {
			out = append(out, p)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			before := out[j].PaidAt.Before(out[i].PaidAt)
			if asc == before {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

func (f *fakeSettlementStore) InsertPayment(ctx context.Context, p *models.Payment) (bool, error) {
	if f.failInsert != nil {
		return false, f.failInsert
	}
	if _, exists := f.payments[p.ChargeID]; exists {
		return false, nil
	}
	p.ID = f.nextID
	f.nextID++
	stored := *p
	f.payments[p.ChargeID] = &stored
	return true, nil
}

func (f *fakeSettlementStore) PaymentByChargeID(ctx context.Context, chargeID string) (*models.Payment, error) {
	p, ok := f.payments[chargeID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return p, nil
}

func (f *fakeSettlementStore) RemoveCartEntries(ctx context.Context, ids []int64) (int64, error) {
	var removed int64
	for _, id := range ids {
		if f.cartEntries[id] {
			delete(f.cartEntries, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeSettlementStore) EnrollStudent(ctx context.Context, classID int64) (bool, error) {
	if f.seats[classID] < 1 {
		return false, nil
	}
	f.seats[classID]--
	f.enrolled[classID]++
	return true, nil
}

func (f *fakeSettlementStore) MissingClassIDs(ctx context.Context, ids []int64) ([]int64, error) {
	var missing []int64
	for _, id := range ids {
		if _, ok := f.seats[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (f *fakeSettlementStore) RecordOutcome(ctx context.Context, paymentID int64, cartRemoved int64, classesUpdated int, overbooked []int64) error {
	for _, p := range f.payments {
		if p.ID == paymentID {
			p.CartRemovedCount = cartRemoved
			p.ClassesUpdated = classesUpdated
			p.OverbookedClassIDs = overbooked
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

// fakeClassStore serves only the reads the settlement service needs
type fakeClassStore struct {
	classes map[int64]*models.Class
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{classes: make(map[int64]*models.Class)}
}

func (f *fakeClassStore) Create(ctx context.Context, class *models.Class) error {
	f.classes[class.ID] = class
	return nil
}

func (f *fakeClassStore) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return class, nil
}

func (f *fakeClassStore) GetAll(ctx context.Context) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range f.classes {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClassStore) GetByInstructorEmail(ctx context.Context, email string) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range f.classes {
		if c.InstructorEmail == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClassStore) GetByStatus(ctx context.Context, status models.ClassStatus) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range f.classes {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClassStore) GetPopular(ctx context.Context, limit int) ([]*models.Class, error) {
	approved, _ := f.GetByStatus(ctx, models.StatusApproved)
	for i := 0; i < len(approved); i++ {
		for j := i + 1; j < len(approved); j++ {
			if approved[j].EnrolledStudents > approved[i].EnrolledStudents {
				approved[i], approved[j] = approved[j], approved[i]
			}
		}
	}
	if len(approved) > limit {
		approved = approved[:limit]
	}
	return approved, nil
}

func (f *fakeClassStore) GetByIDs(ctx context.Context, ids []int64) ([]*models.Class, error) {
	var out []*models.Class
	for _, id := range ids {
		if c, ok := f.classes[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClassStore) UpdateDetails(ctx context.Context, id int64, name *string, priceCents *int64, availableSeats *int) error {
	class, ok := f.classes[id]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	if name != nil {
		class.Name = *name
	}
	if priceCents != nil {
		class.PriceCents = *priceCents
	}
	if availableSeats != nil {
		class.AvailableSeats = *availableSeats
	}
	return nil
}

func (f *fakeClassStore) UpdateStatus(ctx context.Context, id int64, status models.ClassStatus) error {
	class, ok := f.classes[id]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	class.Status = status
	return nil
}

func (f *fakeClassStore) UpdateFeedback(ctx context.Context, id int64, feedback string) error {
	class, ok := f.classes[id]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	class.Feedback = &feedback
	return nil
}

func validCharge(id string) payment.ConfirmedCharge {
	return payment.ConfirmedCharge{
		ID:          id,
		AmountCents: 4500,
		Currency:    "usd",
	}
}

func TestSettleRecordsPaymentAndMovesSeats(t *testing.T) {
	store := newFakeSettlementStore()
	store.addClass(1, 5)
	store.addClass(2, 3)
	store.addCartEntry(10)
	store.addCartEntry(11)

	svc := NewSettlementService(store, newFakeClassStore(), nil)

	result, err := svc.Settle(context.Background(), "dancer@example.com", validCharge("ch_1"), []int64{1, 2}, []int64{10, 11})
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}

	if result.AlreadySettled {
		t.Error("first settlement should not report AlreadySettled")
	}
	if result.CartRemovedCount != 2 {
		t.Errorf("expected 2 cart entries removed, got %d", result.CartRemovedCount)
	}
	if result.ClassesUpdatedCount != 2 {
		t.Errorf("expected 2 classes updated, got %d", result.ClassesUpdatedCount)
	}
	if len(result.OverbookedClassIDs) != 0 {
		t.Errorf("expected no overbooked classes, got %v", result.OverbookedClassIDs)
	}

	// One seat moved per class: available down one, enrolled up one
	if store.seats[1] != 4 || store.enrolled[1] != 1 {
		t.Errorf("class 1 seat move wrong: available=%d enrolled=%d", store.seats[1], store.enrolled[1])
	}
	if store.seats[2] != 2 || store.enrolled[2] != 1 {
		t.Errorf("class 2 seat move wrong: available=%d enrolled=%d", store.seats[2], store.enrolled[2])
	}
	if len(store.cartEntries) != 0 {
		t.Errorf("expected empty cart, got %d entries", len(store.cartEntries))
	}
}

func TestSettleReplaySameChargeIsIdempotent(t *testing.T) {
	store := newFakeSettlementStore()
	store.addClass(1, 5)
	store.addCartEntry(10)

	svc := NewSettlementService(store, newFakeClassStore(), nil)

	first, err := svc.Settle(context.Background(), "dancer@example.com", validCharge("ch_dup"), []int64{1}, []int64{10})
	if err != nil {
		t.Fatalf("first Settle returned error: %v", err)
	}

	second, err := svc.Settle(context.Background(), "dancer@example.com", validCharge("ch_dup"), []int64{1}, []int64{10})
	if err != nil {
		t.Fatalf("replay Settle returned error: %v", err)
	}

	if !second.AlreadySettled {
		t.Error("replay should report AlreadySettled")
	}
	if second.PaymentID != first.PaymentID {
		t.Errorf("replay payment id %d differs from original %d", second.PaymentID, first.PaymentID)
	}
	if second.CartRemovedCount != first.CartRemovedCount || second.ClassesUpdatedCount != first.ClassesUpdatedCount {
		t.Errorf("replay outcome differs from original: %+v vs %+v", second, first)
	}

	// Exactly one seat moved despite two calls
	if store.seats[1] != 4 || store.enrolled[1] != 1 {
		t.Errorf("replay double-enrolled: available=%d enrolled=%d", store.seats[1], store.enrolled[1])
	}
	if len(store.payments) != 1 {
		t.Errorf("expected one payment record, got %d", len(store.payments))
	}
}

func TestSettleLastSeatHasOneWinner(t *testing.T) {
	store := newFakeSettlementStore()
	store.addClass(1, 1)
	store.addClass(2, 10)

	svc := NewSettlementService(store, newFakeClassStore(), nil)

	winner, err := svc.Settle(context.Background(), "first@example.com", validCharge("ch_w"), []int64{1}, nil)
	if err != nil {
		t.Fatalf("winner Settle returned error: %v", err)
	}
	if winner.ClassesUpdatedCount != 1 || len(winner.OverbookedClassIDs) != 0 {
		t.Fatalf("winner should take the last seat: %+v", winner)
	}

	// The loser still settles its other class; the full class is flagged
	loser, err := svc.Settle(context.Background(), "second@example.com", validCharge("ch_l"), []int64{1, 2}, nil)
	if err != nil {
		t.Fatalf("loser Settle returned error: %v", err)
	}
	if loser.ClassesUpdatedCount != 1 {
		t.Errorf("loser should enroll in the class with seats, got %d updates", loser.ClassesUpdatedCount)
	}
	if len(loser.OverbookedClassIDs) != 1 || loser.OverbookedClassIDs[0] != 1 {
		t.Errorf("expected class 1 flagged as overbooked, got %v", loser.OverbookedClassIDs)
	}

	// Seats never go negative
	if store.seats[1] != 0 || store.enrolled[1] != 1 {
		t.Errorf("class 1 oversold: available=%d enrolled=%d", store.seats[1], store.enrolled[1])
	}
}

func TestSettleUnknownClassRejectsWholeBatch(t *testing.T) {
	store := newFakeSettlementStore()
	store.addClass(1, 5)
	store.addCartEntry(10)

	svc := NewSettlementService(store, newFakeClassStore(), nil)

	_, err := svc.Settle(context.Background(), "dancer@example.com", validCharge("ch_x"), []int64{1, 99}, []int64{10})
	if !errors.Is(err, apperrors.ErrClassNotFound) {
		t.Fatalf("expected class-not-found error, got %v", err)
	}

	// Nothing was recorded or mutated
	if len(store.payments) != 0 {
		t.Error("payment recorded despite unknown class id")
	}
	if !store.cartEntries[10] {
		t.Error("cart entry removed despite unknown class id")
	}
	if store.seats[1] != 5 {
		t.Errorf("seats changed despite unknown class id: %d", store.seats[1])
	}
}

func TestSettleRejectsInvalidCharges(t *testing.T) {
	svc := NewSettlementService(newFakeSettlementStore(), newFakeClassStore(), nil)

	cases := []struct {
		name   string
		charge payment.ConfirmedCharge
	}{
		{"empty id", payment.ConfirmedCharge{ID: "", AmountCents: 100, Currency: "usd"}},
		{"zero amount", payment.ConfirmedCharge{ID: "ch_1", AmountCents: 0, Currency: "usd"}},
		{"negative amount", payment.ConfirmedCharge{ID: "ch_1", AmountCents: -5, Currency: "usd"}},
		{"wrong currency", payment.ConfirmedCharge{ID: "ch_1", AmountCents: 100, Currency: "eur"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Settle(context.Background(), "dancer@example.com", tc.charge, []int64{1}, nil)
			if !errors.Is(err, apperrors.ErrInvalidCharge) {
				t.Errorf("expected invalid-charge error, got %v", err)
			}
		})
	}
}

func TestSettleCountsMissingCartEntries(t *testing.T) {
	store := newFakeSettlementStore()
	store.addClass(1, 5)
	store.addCartEntry(10)
	// entry 11 never existed

	svc := NewSettlementService(store, newFakeClassStore(), nil)

	result, err := svc.Settle(context.Background(), "dancer@example.com", validCharge("ch_1"), []int64{1}, []int64{10, 11})
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}
	if result.CartRemovedCount != 1 {
		t.Errorf("expected 1 cart entry removed, got %d", result.CartRemovedCount)
	}
}

func TestListEnrollmentsEarliestPaymentWins(t *testing.T) {
	store := newFakeSettlementStore()
	classStore := newFakeClassStore()
	classStore.classes[1] = &models.Class{ID: 1, Name: "Salsa"}
	classStore.classes[2] = &models.Class{ID: 2, Name: "Tango"}

	early := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	late := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

	store.payments["ch_a"] = &models.Payment{
		ID: 1, StudentEmail: "dancer@example.com", ChargeID: "ch_a",
		ClassIDs: []int64{1}, PaidAt: early,
	}
	store.payments["ch_b"] = &models.Payment{
		ID: 2, StudentEmail: "dancer@example.com", ChargeID: "ch_b",
		ClassIDs: []int64{1, 2}, PaidAt: late,
	}

	svc := NewSettlementService(store, classStore, nil)

	enrollments, err := svc.ListEnrollments(context.Background(), "dancer@example.com")
	if err != nil {
		t.Fatalf("ListEnrollments returned error: %v", err)
	}

	if len(enrollments) != 2 {
		t.Fatalf("expected 2 enrollments, got %d", len(enrollments))
	}
	for _, e := range enrollments {
		switch e.Class.ID {
		case 1:
			if !e.PaymentDate.Equal(early) {
				t.Errorf("class 1 should carry the earliest payment date, got %v", e.PaymentDate)
			}
		case 2:
			if !e.PaymentDate.Equal(late) {
				t.Errorf("class 2 payment date wrong: %v", e.PaymentDate)
			}
		default:
			t.Errorf("unexpected class id %d", e.Class.ID)
		}
	}
}

func TestListEnrollmentsEmptyHistory(t *testing.T) {
	svc := NewSettlementService(newFakeSettlementStore(), newFakeClassStore(), nil)

	enrollments, err := svc.ListEnrollments(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("ListEnrollments returned error: %v", err)
	}
	if len(enrollments) != 0 {
		t.Errorf("expected no enrollments, got %d", len(enrollments))
	}
}

func TestSettleInsertFailureSurfacesError(t *testing.T) {
	store := newFakeSettlementStore()
	store.addClass(1, 5)
	store.failInsert = errors.New("connection reset")

	svc := NewSettlementService(store, newFakeClassStore(), nil)

	_, err := svc.Settle(context.Background(), "dancer@example.com", validCharge("ch_1"), []int64{1}, nil)
	if err == nil {
		t.Fatal("expected error when payment insert fails")
	}
}
