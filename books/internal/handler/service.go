package handler

import (
	"context"

	"github.com/Astemirdum/book-tracker/books/internal/model"
	"github.com/Astemirdum/book-tracker/books/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type UserService interface {
	Register(ctx context.Context, req model.UserCreateRequest) (model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (model.Token, error)
	Authorize(ctx context.Context, token string) (model.User, error)
}

type BookService interface {
	CreateBook(ctx context.Context, ownerID int64, req model.BookCreateRequest) (model.Book, error)
	GetBook(ctx context.Context, ownerID, id int64) (model.Book, error)
	ListBooks(ctx context.Context, ownerID int64, filter model.BookFilter) (model.Page[model.Book], error)
	UpdateBook(ctx context.Context, ownerID, id int64, req model.BookUpdateRequest) (model.Book, error)
	DeleteBook(ctx context.Context, ownerID, id int64) error
}

var (
	_ UserService = (*service.Service)(nil)
	_ BookService = (*service.Service)(nil)
)
