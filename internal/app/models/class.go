package models

import (
	"time"
)

// Class defines a class offering based on the 'classes' table.
// availableSeats + enrolledStudents is conserved across settlement:
// one unit moves from available to enrolled per successful enrollment.
type Class struct {
	ID               int64       `json:"id" db:"id" example:"1"`
	Name             string      `json:"name" db:"name" example:"Beginner Salsa"`
	ImageURL         *string     `json:"imageUrl,omitempty" db:"image_url"`
	InstructorName   string      `json:"instructorName" db:"instructor_name" example:"Maria Lopez"`
	InstructorEmail  string      `json:"instructorEmail" db:"instructor_email" example:"maria@example.com"`
	PriceCents       int64       `json:"priceCents" db:"price_cents" example:"4500"` // price in minor units
	AvailableSeats   int         `json:"availableSeats" db:"available_seats" example:"20"`
	EnrolledStudents int         `json:"enrolledStudents" db:"enrolled_students" example:"4"`
	Status           ClassStatus `json:"status" db:"status" example:"pending"`
	Feedback         *string     `json:"feedback,omitempty" db:"feedback"` // admin moderation note (nullable)
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}

// InstructorSummary aggregates an instructor's catalog footprint.
// Instructors with zero classes still appear with zero totals.
type InstructorSummary struct {
	Name                    string  `json:"name"`
	Email                   string  `json:"email"`
	PhotoURL                *string `json:"photoUrl,omitempty"`
	PhoneNumber             *string `json:"phoneNumber,omitempty"`
	Gender                  *string `json:"gender,omitempty"`
	TotalClasses            int     `json:"totalClasses"`
	TotalEnrollmentStudents int     `json:"totalEnrollmentStudents"`
}
