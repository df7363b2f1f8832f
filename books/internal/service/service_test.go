package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Astemirdum/book-tracker/books/internal/errs"
	"github.com/Astemirdum/book-tracker/books/internal/model"
	repo_mocks "github.com/Astemirdum/book-tracker/books/internal/repository/mocks"
	"github.com/Astemirdum/book-tracker/books/internal/service"
	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/password"
	"github.com/Astemirdum/book-tracker/pkg/validate"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.BookEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev model.BookEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

var (
	hasher = password.NewHasherWithCost(bcrypt.MinCost)
	tokens = auth.NewManager(auth.Config{SecretKey: "service-test", TTLMinutes: 15})
)

func newService(t *testing.T) (*service.Service, *repo_mocks.MockRepository, *recordingPublisher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := repo_mocks.NewMockRepository(ctrl)
	pub := &recordingPublisher{}
	svc := service.NewService(repo, tokens, zap.NewNop(),
		service.WithHasher(hasher),
		service.WithPublisher(pub),
	)
	return svc, repo, pub
}

func TestService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	req := model.UserCreateRequest{Email: "ann@example.com", Password: "pw"}

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().GetUserByEmail(ctx, req.Email).Return(model.User{}, errs.ErrNotFound)
		repo.EXPECT().CreateUser(ctx, req.Email, gomock.Any()).
			DoAndReturn(func(_ context.Context, email, hashed string) (model.User, error) {
				require.True(t, hasher.Check("pw", hashed))
				return model.User{ID: 1, Email: email, HashedPassword: hashed, IsActive: true}, nil
			})

		user, err := svc.Register(ctx, req)
		require.NoError(t, err)
		require.Equal(t, int64(1), user.ID)
	})

	t.Run("duplicate on lookup", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().GetUserByEmail(ctx, req.Email).Return(model.User{ID: 1, Email: req.Email}, nil)

		_, err := svc.Register(ctx, req)
		require.ErrorIs(t, err, errs.ErrAlreadyExists)
	})

	t.Run("duplicate on insert race", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().GetUserByEmail(ctx, req.Email).Return(model.User{}, errs.ErrNotFound)
		repo.EXPECT().CreateUser(ctx, req.Email, gomock.Any()).Return(model.User{}, errs.ErrAlreadyExists)

		_, err := svc.Register(ctx, req)
		require.ErrorIs(t, err, errs.ErrAlreadyExists)
	})

	t.Run("password over bcrypt byte limit", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		long := model.UserCreateRequest{Email: req.Email, Password: strings.Repeat("é", 72)}
		repo.EXPECT().GetUserByEmail(ctx, req.Email).Return(model.User{}, errs.ErrNotFound)

		_, err := svc.Register(ctx, long)
		var vErrs validate.Errors
		require.True(t, errors.As(err, &vErrs))
		require.Equal(t, "password", vErrs[0].Field)
	})

	t.Run("lookup failure", func(t *testing.T) {
		t.Parallel()
		svc, repo, _ := newService(t)
		repo.EXPECT().GetUserByEmail(ctx, req.Email).Return(model.User{}, errors.New("conn reset"))

		_, err := svc.Register(ctx, req)
		require.EqualError(t, err, "conn reset")
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	digest, err := hasher.Hash("right")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		user     model.User
		repoErr  error
		wantErr  error
	}{
		{name: "ok", password: "right", user: model.User{ID: 5, HashedPassword: digest, IsActive: true}},
		{name: "wrong password", password: "wrong", user: model.User{ID: 5, HashedPassword: digest, IsActive: true}, wantErr: errs.ErrIncorrectCredentials},
		{name: "inactive", password: "right", user: model.User{ID: 5, HashedPassword: digest}, wantErr: errs.ErrIncorrectCredentials},
		{name: "unknown email", password: "right", repoErr: errs.ErrNotFound, wantErr: errs.ErrIncorrectCredentials},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newService(t)
			repo.EXPECT().GetUserByEmail(ctx, "bob@example.com").Return(tt.user, tt.repoErr)

			token, err := svc.Login(ctx, model.LoginRequest{Username: "bob@example.com", Password: tt.password})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "bearer", token.TokenType)

			claims, err := tokens.Decode(token.AccessToken)
			require.NoError(t, err)
			require.Equal(t, "5", claims.Subject)
		})
	}
}

func TestService_Authorize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	valid, err := tokens.Issue("12")
	require.NoError(t, err)
	expired, err := tokens.IssueWithTTL("12", -time.Minute)
	require.NoError(t, err)
	noSubject, err := tokens.Issue("")
	require.NoError(t, err)
	notNumeric, err := tokens.Issue("abc")
	require.NoError(t, err)

	tests := []struct {
		name         string
		token        string
		mockBehavior func(r *repo_mocks.MockRepository)
		wantErr      error
	}{
		{
			name:  "ok",
			token: valid,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByID(ctx, int64(12)).Return(model.User{ID: 12, IsActive: true}, nil)
			},
		},
		{name: "expired", token: expired, mockBehavior: func(r *repo_mocks.MockRepository) {}, wantErr: errs.ErrTokenExpired},
		{name: "garbage", token: "garbage", mockBehavior: func(r *repo_mocks.MockRepository) {}, wantErr: errs.ErrInvalidCredentials},
		{name: "no subject", token: noSubject, mockBehavior: func(r *repo_mocks.MockRepository) {}, wantErr: errs.ErrInvalidCredentials},
		{name: "subject not an id", token: notNumeric, mockBehavior: func(r *repo_mocks.MockRepository) {}, wantErr: errs.ErrInvalidCredentials},
		{
			name:  "user gone",
			token: valid,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByID(ctx, int64(12)).Return(model.User{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
		{
			name:  "user inactive",
			token: valid,
			mockBehavior: func(r *repo_mocks.MockRepository) {
				r.EXPECT().GetUserByID(ctx, int64(12)).Return(model.User{ID: 12}, nil)
			},
			wantErr: errs.ErrInvalidCredentials,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo, _ := newService(t)
			tt.mockBehavior(repo)

			user, err := svc.Authorize(ctx, tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(12), user.ID)
		})
	}
}

func TestService_ListBooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo, _ := newService(t)

	filter := model.DefaultBookFilter()
	filter.Page, filter.Size = 2, 2
	repo.EXPECT().ListBooks(ctx, int64(1), filter).
		Return([]model.Book{{ID: 3, OwnerID: 1, Title: "Book 2"}}, 3, nil)

	page, err := svc.ListBooks(ctx, 1, filter)
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Equal(t, 2, page.Pages)
	require.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
}

func TestService_CreateBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo, pub := newService(t)

	req := model.BookCreateRequest{Title: "Clean Code", Author: "Robert C. Martin"}
	repo.EXPECT().CreateBook(ctx, int64(4), req).
		Return(model.Book{ID: 10, OwnerID: 4, Title: req.Title, Author: req.Author, Status: model.StatusToRead}, nil)

	book, err := svc.CreateBook(ctx, 4, req)
	require.NoError(t, err)
	require.Equal(t, model.StatusToRead, book.Status)

	require.Len(t, pub.events, 1)
	require.Equal(t, model.EventBookCreated, pub.events[0].Type)
	require.Equal(t, int64(10), pub.events[0].BookID)
}

func TestService_UpdateBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start := model.NewDate(2024, time.May, 1)
	stored := model.Book{
		ID: 10, OwnerID: 4,
		Title: "Clean Code", Author: "Robert C. Martin",
		Status: model.StatusToRead, StartDate: &start,
	}

	t.Run("merges present fields only", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)
		want := stored
		want.Status = model.StatusReading

		repo.EXPECT().GetBook(ctx, int64(4), int64(10)).Return(stored, nil)
		repo.EXPECT().UpdateBook(ctx, want).Return(want, nil)

		got, err := svc.UpdateBook(ctx, 4, 10, model.BookUpdateRequest{Status: model.Some(model.StatusReading)})
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Len(t, pub.events, 1)
		require.Equal(t, model.EventBookUpdated, pub.events[0].Type)
	})

	t.Run("empty update is a read", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)
		repo.EXPECT().GetBook(ctx, int64(4), int64(10)).Return(stored, nil)

		got, err := svc.UpdateBook(ctx, 4, 10, model.BookUpdateRequest{})
		require.NoError(t, err)
		require.Equal(t, stored, got)
		require.Empty(t, pub.events)
	})

	t.Run("not owned", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)
		repo.EXPECT().GetBook(ctx, int64(5), int64(10)).Return(model.Book{}, errs.ErrNotFound)

		_, err := svc.UpdateBook(ctx, 5, 10, model.BookUpdateRequest{Title: model.Some("x")})
		require.ErrorIs(t, err, errs.ErrNotFound)
		require.Empty(t, pub.events)
	})
}

func TestService_DeleteBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)
		repo.EXPECT().DeleteBook(ctx, int64(4), int64(10)).Return(nil)

		require.NoError(t, svc.DeleteBook(ctx, 4, 10))
		require.Len(t, pub.events, 1)
		require.Equal(t, model.EventBookDeleted, pub.events[0].Type)
		require.Nil(t, pub.events[0].Book)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		svc, repo, pub := newService(t)
		repo.EXPECT().DeleteBook(ctx, int64(4), int64(11)).Return(errs.ErrNotFound)

		require.ErrorIs(t, svc.DeleteBook(ctx, 4, 11), errs.ErrNotFound)
		require.Empty(t, pub.events)
	})
}
