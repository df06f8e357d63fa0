package httpx

import (
	"net/mail"
	"strings"
)

// Request payload validation runs before any handler logic. Each payload type
// carries an explicit validate method returning field-level errors; an empty
// slice means the record is usable as-is.

const (
	minPasswordLen    = 5
	minTitleLen       = 3
	minDescriptionLen = 5
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r createUserRequest) validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !validEmail(r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "please enter a valid email"})
	}
	if len(r.Password) < minPasswordLen {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 5 characters"})
	}
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() []FieldError {
	var errs []FieldError
	if !validEmail(r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "please enter a valid email"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password cannot be blank"})
	}
	return errs
}

type newPlaylistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r newPlaylistRequest) validate() []FieldError {
	var errs []FieldError
	if len(strings.TrimSpace(r.Title)) < minTitleLen {
		errs = append(errs, FieldError{Field: "title", Message: "title must be at least 3 characters"})
	}
	if len(strings.TrimSpace(r.Description)) < minDescriptionLen {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at least 5 characters"})
	}
	return errs
}

// updatePlaylistRequest fields are optional; absent fields leave the stored
// value untouched (partial merge).
type updatePlaylistRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r updatePlaylistRequest) validate() []FieldError {
	var errs []FieldError
	if r.Title != nil && len(strings.TrimSpace(*r.Title)) < minTitleLen {
		errs = append(errs, FieldError{Field: "title", Message: "title must be at least 3 characters"})
	}
	if r.Description != nil && len(strings.TrimSpace(*r.Description)) < minDescriptionLen {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at least 5 characters"})
	}
	return errs
}

func validEmail(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	addr, err := mail.ParseAddress(trimmed)
	return err == nil && addr.Address == trimmed
}
