// Package server provides the HTTP REST API for the resume screener.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrFileTooLarge indicates an upload over the configured size limit
type ErrFileTooLarge struct {
	Filename string
	LimitMB  int
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file too large: %s (limit %d MB)", e.Filename, e.LimitMB)
}

// ErrUnsupportedFile indicates an upload with a disallowed extension
type ErrUnsupportedFile struct {
	Filename string
}

func (e *ErrUnsupportedFile) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Filename)
}

// ErrCorruptedFile indicates an upload that could not be parsed
type ErrCorruptedFile struct {
	Filename string
	Cause    error
}

func (e *ErrCorruptedFile) Error() string {
	return fmt.Sprintf("corrupted file: %s: %v", e.Filename, e.Cause)
}

func (e *ErrCorruptedFile) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation, *ErrUnsupportedFile:
		return http.StatusBadRequest
	case *ErrFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case *ErrCorruptedFile:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
