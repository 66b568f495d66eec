package dto

// CreateUserRequest registers an account on first sign-in
type CreateUserRequest struct {
	Email       string  `json:"email" binding:"required,email" example:"dancer@example.com"`
	Name        string  `json:"name" binding:"required" example:"Jane Doe"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Gender      *string `json:"gender,omitempty"`
}

// UpdateRoleRequest changes an account's role. The role field is a closed
// enum; unrecognized values are rejected rather than defaulted.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student instructor admin" example:"instructor"`
}
