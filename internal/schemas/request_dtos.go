// Package schemas defines the request structures for the various operations of the application.
package schemas

// SignupRequest is a struct that represents a signup request
// Name is required and must be less than 50 characters
// Email is required and must be a valid email
// Password is required and must be at least 6 characters
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is a struct that represents a login request
// Email is required and must be a valid email
// Password is required and must be at least 6 characters
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateActivityRequest is a struct that represents a create activity request
// The fields arrive as multipart form values alongside the image file
// Description must be at least 5 characters
type CreateActivityRequest struct {
	Title       string `form:"title" validate:"required,max=100"`
	Description string `form:"description" validate:"required,min=5,max=512"`
	Address     string `form:"address" validate:"required,max=256"`
}

// UpdateActivityRequest is a struct that represents an update activity request
// Only title and description are mutable, ownership never changes
type UpdateActivityRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,min=5,max=512"`
}
