package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/book-tracker/books/internal/errs"
	"github.com/Astemirdum/book-tracker/pkg/validate"
)

const (
	titleValidation      = "Validation error"
	titleNotFound        = "Not found"
	titleConflict        = "Conflict"
	titleUnauthenticated = "Unauthorized"
	titleInternal        = "Internal server error"
	titleHTTP            = "HTTP error"

	detailValidation = "Request data is invalid."
	detailInternal   = "An unexpected error occurred."
)

var unauthenticated = map[error]string{
	errs.ErrNotAuthenticated:     "Not authenticated",
	errs.ErrTokenExpired:         "Token expired",
	errs.ErrInvalidCredentials:   "Invalid authentication credentials",
	errs.ErrIncorrectCredentials: "Incorrect email or password",
}

// errorHandler renders every error as an errs.ErrorResponse.
func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	resp := h.toResponse(err, c)
	if resp.Status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(resp.Status)
	} else {
		err = c.JSON(resp.Status, resp)
	}
	if err != nil {
		h.log.Error("write error response", zap.Error(err))
	}
}

func (h *Handler) toResponse(err error, c echo.Context) errs.ErrorResponse {
	var (
		vErrs  validate.Errors
		httpEr *echo.HTTPError
	)
	switch {
	case errors.As(err, &vErrs):
		resp := errs.NewErrorResponse(errs.TypeValidation, titleValidation, detailValidation, http.StatusUnprocessableEntity)
		resp.Errors = vErrs
		return resp
	case errors.Is(err, errs.ErrNotFound):
		return errs.NewErrorResponse(errs.TypeNotFound, titleNotFound, "Book not found", http.StatusNotFound)
	case errors.Is(err, errs.ErrAlreadyExists):
		return errs.NewErrorResponse(errs.TypeConflict, titleConflict, "Email already registered", http.StatusConflict)
	case errors.As(err, &httpEr):
		return errs.NewErrorResponse(errs.TypeHTTP, titleHTTP, fmt.Sprint(httpEr.Message), httpEr.Code)
	}
	for target, detail := range unauthenticated {
		if errors.Is(err, target) {
			return errs.NewErrorResponse(errs.TypeUnauthenticated, titleUnauthenticated, detail, http.StatusUnauthorized)
		}
	}

	h.log.Error("unhandled error",
		zap.String("method", c.Request().Method),
		zap.String("uri", c.Request().RequestURI),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return errs.NewErrorResponse(errs.TypeInternal, titleInternal, detailInternal, http.StatusInternalServerError)
}

// bindError turns a decoding failure into a field level validation error.
func bindError(field string, err error) error {
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
		if he.Internal != nil {
			msg = he.Internal.Error()
		}
	}
	return validate.Errors{{Field: field, Tag: "parse", Message: msg}}
}
