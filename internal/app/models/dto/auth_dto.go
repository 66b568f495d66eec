package dto

// IssueTokenRequest carries the identity claim a token is issued for
type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email" example:"dancer@example.com"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"3600"` // seconds until expiry
}

// RoleCheckResponse reports whether the subject holds a given role
type RoleCheckResponse struct {
	Admin      *bool `json:"admin,omitempty"`
	Instructor *bool `json:"instructor,omitempty"`
}
