package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Astemirdum/book-tracker/books/internal/errs"
	"github.com/Astemirdum/book-tracker/books/internal/model"
	"github.com/Astemirdum/book-tracker/pkg/auth"
)

const userKey = "user"

// authMW resolves the bearer token to the calling user.
func (h *Handler) authMW(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(auth.AuthorizationHeader))
		if !ok {
			return errs.ErrNotAuthenticated
		}
		user, err := h.userSvc.Authorize(c.Request().Context(), token)
		if err != nil {
			return err
		}
		c.Set(userKey, user)
		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, strings.TrimSpace(auth.Bearer)) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentUser(c echo.Context) (model.User, error) {
	user, ok := c.Get(userKey).(model.User)
	if !ok {
		return model.User{}, errors.New("no user in request context")
	}
	return user, nil
}
