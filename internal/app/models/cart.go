package models

import (
	"time"
)

// CartEntry links a student to a class they selected but have not yet paid for.
// At most one entry exists per (studentEmail, classId) pair; entries are
// destroyed either by explicit removal or by settlement of a payment that
// references them.
type CartEntry struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	StudentEmail string    `json:"studentEmail" db:"student_email" example:"dancer@example.com"`
	ClassID      int64     `json:"classId" db:"class_id" example:"3"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
