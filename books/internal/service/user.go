package service

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-tracker/books/internal/errs"
	"github.com/Astemirdum/book-tracker/books/internal/model"
	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/password"
	"github.com/Astemirdum/book-tracker/pkg/validate"
)

func (s *Service) Register(ctx context.Context, req model.UserCreateRequest) (model.User, error) {
	_, err := s.repo.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return model.User{}, errs.ErrAlreadyExists
	case !errors.Is(err, errs.ErrNotFound):
		return model.User{}, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return model.User{}, validate.Errors{model.PasswordTooLong()}
		}
		return model.User{}, err
	}
	// the unique index on email settles concurrent registrations
	return s.repo.CreateUser(ctx, req.Email, hashed)
}

// Authenticate never tells the caller why a login failed.
func (s *Service) Authenticate(ctx context.Context, email, plaintext string) (model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.ErrIncorrectCredentials
		}
		return model.User{}, err
	}
	if !s.hasher.Check(plaintext, user.HashedPassword) || !user.IsActive {
		s.log.Debug("authenticate rejected", zap.Int64("user_id", user.ID), zap.Bool("active", user.IsActive))
		return model.User{}, errs.ErrIncorrectCredentials
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.Token, error) {
	user, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return model.Token{}, err
	}
	token, err := s.tokens.Issue(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return model.Token{}, errors.Wrap(err, "issue token")
	}
	return model.Token{AccessToken: token, TokenType: auth.TokenType}, nil
}

// Authorize resolves a bearer token to an active user.
func (s *Service) Authorize(ctx context.Context, token string) (model.User, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return model.User{}, errs.ErrTokenExpired
		}
		return model.User{}, errs.ErrInvalidCredentials
	}
	if claims.Subject == "" {
		return model.User{}, errs.ErrInvalidCredentials
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return model.User{}, errs.ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !user.IsActive {
		return model.User{}, errs.ErrInvalidCredentials
	}
	return user, nil
}
