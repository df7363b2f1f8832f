package service

import (
	"context"
	"time"

	"github.com/Astemirdum/book-tracker/books/internal/model"
)

func (s *Service) CreateBook(ctx context.Context, ownerID int64, req model.BookCreateRequest) (model.Book, error) {
	book, err := s.repo.CreateBook(ctx, ownerID, req)
	if err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, model.EventBookCreated, book)
	return book, nil
}

func (s *Service) GetBook(ctx context.Context, ownerID, id int64) (model.Book, error) {
	return s.repo.GetBook(ctx, ownerID, id)
}

func (s *Service) ListBooks(ctx context.Context, ownerID int64, filter model.BookFilter) (model.Page[model.Book], error) {
	items, total, err := s.repo.ListBooks(ctx, ownerID, filter)
	if err != nil {
		return model.Page[model.Book]{}, err
	}
	return model.NewPage(items, total, filter.Page, filter.Size), nil
}

func (s *Service) UpdateBook(ctx context.Context, ownerID, id int64, req model.BookUpdateRequest) (model.Book, error) {
	book, err := s.repo.GetBook(ctx, ownerID, id)
	if err != nil {
		return model.Book{}, err
	}
	if req.Empty() {
		return book, nil
	}
	req.Apply(&book)

	updated, err := s.repo.UpdateBook(ctx, book)
	if err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, model.EventBookUpdated, updated)
	return updated, nil
}

func (s *Service) DeleteBook(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.DeleteBook(ctx, ownerID, id); err != nil {
		return err
	}
	s.publisher.Publish(ctx, model.BookEvent{
		Type:       model.EventBookDeleted,
		BookID:     id,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *Service) publish(ctx context.Context, typ model.EventType, book model.Book) {
	s.publisher.Publish(ctx, model.BookEvent{
		Type:       typ,
		BookID:     book.ID,
		OwnerID:    book.OwnerID,
		Book:       &book,
		OccurredAt: time.Now().UTC(),
	})
}
