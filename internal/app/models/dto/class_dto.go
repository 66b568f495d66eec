package dto

// CreateClassRequest adds a new class offering to the catalog
type CreateClassRequest struct {
	Name           string  `json:"name" binding:"required" example:"Beginner Salsa"`
	ImageURL       *string `json:"imageUrl,omitempty"`
	InstructorName string  `json:"instructorName" binding:"required" example:"Maria Lopez"`
	PriceCents     int64   `json:"priceCents" binding:"required,gt=0" example:"4500"`
	AvailableSeats int     `json:"availableSeats" binding:"required,gte=0" example:"20"`
}

// UpdateClassRequest applies a partial-field merge to an offering.
// Nil fields are left untouched.
type UpdateClassRequest struct {
	Name           *string `json:"name,omitempty"`
	PriceCents     *int64  `json:"priceCents,omitempty" binding:"omitempty,gt=0"`
	AvailableSeats *int    `json:"availableSeats,omitempty" binding:"omitempty,gte=0"`
}

// UpdateStatusRequest carries the admin's moderation decision in the request
// body. The value is a closed enum; unrecognized values are rejected.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approve deny" example:"approve"`
}

// FeedbackRequest attaches an admin note to an offering
type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required" example:"Please add a syllabus."`
}
