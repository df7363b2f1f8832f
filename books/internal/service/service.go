package service

import (
	"go.uber.org/zap"

	"github.com/Astemirdum/book-tracker/books/internal/events"
	"github.com/Astemirdum/book-tracker/books/internal/repository"
	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/password"
)

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	hasher    *password.Hasher
	tokens    *auth.Manager
	publisher events.Publisher
}

type Option func(*Service)

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithHasher(h *password.Hasher) Option {
	return func(s *Service) {
		s.hasher = h
	}
}

func NewService(repo repository.Repository, tokens *auth.Manager, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log.Named("service"),
		repo:      repo,
		hasher:    password.NewHasher(),
		tokens:    tokens,
		publisher: events.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
