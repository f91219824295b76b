package handler

import "github.com/N30R4BB1t/login-register/internal/core/domain"

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// --- Response types ---

// authResponse is returned by register and login. The embedded user never
// carries a password hash (excluded at the JSON level and stripped by the
// service).
type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// dataResponse wraps the authenticated CRUD results the way the dashboard
// consumes them.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
