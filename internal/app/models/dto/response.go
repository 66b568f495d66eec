package dto

import "time"

// APIResponse is the standard response envelope for all endpoints
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Message   string       `json:"message,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp,omitempty" example:"2025-04-23T12:01:05.123Z"`
}
