package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "student"
	RoleInstructor RoleType = "instructor"
	RoleAdmin      RoleType = "admin"
)

// ValidRole reports whether the value is a member of the closed role enum.
// Unknown values are rejected, not defaulted.
func ValidRole(r RoleType) bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// ClassStatus defines the moderation state of a class offering
type ClassStatus string

const (
	StatusPending  ClassStatus = "pending"
	StatusApproved ClassStatus = "approved"
	StatusDenied   ClassStatus = "denied"
)

// StatusDecision is the admin's moderation verdict on a pending class
type StatusDecision string

const (
	DecisionApprove StatusDecision = "approve"
	DecisionDeny    StatusDecision = "deny"
)

// Apply maps a moderation decision to the resulting class status.
func (d StatusDecision) Apply() (ClassStatus, bool) {
	switch d {
	case DecisionApprove:
		return StatusApproved, true
	case DecisionDeny:
		return StatusDenied, true
	}
	return "", false
}
