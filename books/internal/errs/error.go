package errs

import (
	"errors"
	"time"

	"github.com/Astemirdum/book-tracker/pkg/validate"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("email already registered")
	ErrIncorrectCredentials = errors.New("incorrect email or password")
	ErrInvalidCredentials   = errors.New("invalid authentication credentials")
	ErrTokenExpired         = errors.New("token expired")
	ErrNotAuthenticated     = errors.New("not authenticated")
)

const (
	TypeValidation      = "ValidationError"
	TypeNotFound        = "NotFound"
	TypeConflict        = "Conflict"
	TypeUnauthenticated = "Unauthenticated"
	TypeInternal        = "InternalError"
	TypeHTTP            = "HTTPError"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Type      string                `json:"type"`
	Title     string                `json:"title"`
	Detail    string                `json:"detail"`
	Status    int                   `json:"status"`
	Timestamp string                `json:"timestamp"`
	Errors    []validate.FieldError `json:"errors,omitempty"`
}

func NewErrorResponse(typ, title, detail string, status int) ErrorResponse {
	return ErrorResponse{
		Type:      typ,
		Title:     title,
		Detail:    detail,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
