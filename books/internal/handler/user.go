package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/book-tracker/books/internal/model"
)

var binder = &echo.DefaultBinder{}

// Register godoc
// @Summary  Register a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    user body     model.UserCreateRequest true "credentials"
// @Success  201  {object} model.User
// @Failure  409  {object} errs.ErrorResponse
// @Failure  422  {object} errs.ErrorResponse
// @Router   /users [post]
func (h *Handler) Register(c echo.Context) error {
	var req model.UserCreateRequest
	if err := binder.BindBody(c, &req); err != nil {
		return bindError("body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, err := h.userSvc.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary  Exchange credentials for an access token
// @Tags     users
// @Accept   x-www-form-urlencoded
// @Produce  json
// @Param    username formData string true "email"
// @Param    password formData string true "password"
// @Success  200 {object} model.Token
// @Failure  401 {object} errs.ErrorResponse
// @Failure  422 {object} errs.ErrorResponse
// @Router   /users/token [post]
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := binder.BindBody(c, &req); err != nil {
		return bindError("body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	token, err := h.userSvc.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, token)
}
