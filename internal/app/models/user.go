package models

import (
	"time"
)

// User defines the account model based on the 'users' table
type User struct {
	ID          int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email       string    `json:"email" db:"email" example:"dancer@example.com"`            // User's email address (unique, case-sensitive match key)
	Name        string    `json:"name" db:"name" example:"Jane Doe"`                        // Display name
	PhotoURL    *string   `json:"photoUrl,omitempty" db:"photo_url"`                        // Profile photo URL (nullable)
	PhoneNumber *string   `json:"phoneNumber,omitempty" db:"phone_number"`                  // Contact number (nullable)
	Gender      *string   `json:"gender,omitempty" db:"gender"`                             // Self-reported gender (nullable)
	Role        RoleType  `json:"role" db:"role" example:"student"`                         // student, instructor or admin
	CreatedAt   time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp of first sign-in
}
