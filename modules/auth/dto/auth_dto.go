package dto

import (
	userEntity "github.com/Ecospace254/employee-sub000/modules/user/entity"
)

// LoginRequest carries the credential pair for session login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the authenticated user's summary. The session token
// itself travels in an HTTP-only cookie, never in the body.
type LoginResponse struct {
	User userEntity.Summary `json:"user"`
}
