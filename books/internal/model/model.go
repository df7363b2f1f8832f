package model

import (
	"math"
	"time"

	"github.com/Astemirdum/book-tracker/pkg/password"
	"github.com/Astemirdum/book-tracker/pkg/validate"
)

type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type UserCreateRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,max=72"`
}

// Validate enforces the bcrypt limit, which counts bytes rather than characters.
func (r UserCreateRequest) Validate() error {
	if len(r.Password) > password.MaxLength {
		return validate.Errors{PasswordTooLong()}
	}
	return nil
}

func PasswordTooLong() validate.FieldError {
	return validate.FieldError{Field: "password", Tag: "max", Message: "value must be at most 72 bytes"}
}

// LoginRequest follows the OAuth2 password grant form: username carries the email.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Status string

const (
	StatusToRead  Status = "TO_READ"
	StatusReading Status = "READING"
	StatusDone    Status = "DONE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusDone:
		return true
	}
	return false
}

type Book struct {
	ID        int64     `json:"id" db:"id"`
	OwnerID   int64     `json:"owner_id" db:"owner_id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	Status    Status    `json:"status" db:"status"`
	StartDate *Date     `json:"start_date" db:"start_date"`
	EndDate   *Date     `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type BookCreateRequest struct {
	Title     string `json:"title" validate:"required,max=500"`
	Author    string `json:"author" validate:"required,max=500"`
	Status    Status `json:"status" validate:"omitempty,oneof=TO_READ READING DONE"`
	StartDate *Date  `json:"start_date"`
	EndDate   *Date  `json:"end_date"`
}

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"

	OrderByCreatedAt = "created_at"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

type BookFilter struct {
	Page    int    `query:"page" validate:"min=1"`
	Size    int    `query:"size" validate:"min=1,max=100"`
	Status  Status `query:"status" validate:"omitempty,oneof=TO_READ READING DONE"`
	Author  string `query:"author"`
	Title   string `query:"title"`
	OrderBy string `query:"order_by" validate:"omitempty,oneof=title author created_at start_date end_date"`
	Order   string `query:"order" validate:"omitempty,oneof=asc desc"`
}

func DefaultBookFilter() BookFilter {
	return BookFilter{
		Page:    1,
		Size:    DefaultPageSize,
		OrderBy: OrderByCreatedAt,
		Order:   OrderDesc,
	}
}

type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

func NewPage[T any](items []T, total, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 1
	if size > 0 {
		pages = int(math.Ceil(float64(total) / float64(size)))
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}
}

type EventType string

const (
	EventBookCreated EventType = "created"
	EventBookUpdated EventType = "updated"
	EventBookDeleted EventType = "deleted"
)

type BookEvent struct {
	Type       EventType `json:"type"`
	BookID     int64     `json:"book_id"`
	OwnerID    int64     `json:"owner_id"`
	Book       *Book     `json:"book,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
