package models

import (
	"time"
)

// Payment is the durability anchor of a settlement: once this record exists
// the settlement is financially committed. The charge id doubles as the
// idempotency key, so replaying a settlement with the same charge can never
// insert a second record. The outcome columns preserve the result of the
// first application so a replay returns the same SettlementResult. ClassIDs
// and StudentEmail carry enough information to drive a future refund
// compensator.
type Payment struct {
	ID                 int64     `json:"id" db:"id" example:"1"`
	StudentEmail       string    `json:"studentEmail" db:"student_email" example:"dancer@example.com"`
	AmountCents        int64     `json:"amountCents" db:"amount_cents" example:"4500"` // amount in minor units
	Currency           string    `json:"currency" db:"currency" example:"usd"`
	ChargeID           string    `json:"chargeId" db:"charge_id" example:"pi_3MtwBwLkdIwHu7ix28a3tqPa"`
	ClassIDs           []int64   `json:"classIds" db:"class_ids"`
	CartEntryIDs       []int64   `json:"cartEntryIds" db:"cart_entry_ids"`
	PaidAt             time.Time `json:"paidAt" db:"paid_at"`
	CartRemovedCount   int64     `json:"cartRemovedCount" db:"cart_removed_count"`
	ClassesUpdated     int       `json:"classesUpdatedCount" db:"classes_updated_count"`
	OverbookedClassIDs []int64   `json:"overbookedClassIds,omitempty" db:"overbooked_class_ids"`
}

// SettlementResult reports the per-step outcomes of a settle call.
type SettlementResult struct {
	PaymentID           int64   `json:"paymentId"`
	CartRemovedCount    int64   `json:"cartRemovedCount"`
	ClassesUpdatedCount int     `json:"classesUpdatedCount"`
	OverbookedClassIDs  []int64 `json:"overbookedClassIds,omitempty"`
	AlreadySettled      bool    `json:"alreadySettled"`
}

// Enrollment pairs a purchased class with the date of the payment that
// produced it. When a class id appears in multiple payments the earliest
// payment date wins.
type Enrollment struct {
	Class       Class     `json:"classDetail"`
	PaymentDate time.Time `json:"paymentDate"`
}
