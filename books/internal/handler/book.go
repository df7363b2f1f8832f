package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/book-tracker/books/internal/model"
	"github.com/Astemirdum/book-tracker/pkg/validate"
)

// CreateBook godoc
// @Summary   Add a book to the caller's list
// @Tags      books
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     book body     model.BookCreateRequest true "book"
// @Success   201  {object} model.Book
// @Failure   401  {object} errs.ErrorResponse
// @Failure   422  {object} errs.ErrorResponse
// @Router    /books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req model.BookCreateRequest
	if err := binder.BindBody(c, &req); err != nil {
		return bindError("body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	book, err := h.bookSvc.CreateBook(c.Request().Context(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// ListBooks godoc
// @Summary   List the caller's books
// @Tags      books
// @Security  Bearer
// @Produce   json
// @Param     page     query    int    false "page, from 1"          default(1)
// @Param     size     query    int    false "page size, up to 100"  default(10)
// @Param     status   query    string false "TO_READ, READING or DONE"
// @Param     author   query    string false "author contains, case insensitive"
// @Param     title    query    string false "title contains, case insensitive"
// @Param     order_by query    string false "title, author, created_at, start_date or end_date" default(created_at)
// @Param     order    query    string false "asc or desc" default(desc)
// @Success   200      {object} model.Page[model.Book]
// @Failure   401      {object} errs.ErrorResponse
// @Failure   422      {object} errs.ErrorResponse
// @Router    /books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	filter := model.DefaultBookFilter()
	if err := binder.BindQueryParams(c, &filter); err != nil {
		return bindError("query", err)
	}
	if err := c.Validate(&filter); err != nil {
		return err
	}
	page, err := h.bookSvc.ListBooks(c.Request().Context(), user.ID, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetBook godoc
// @Summary   Get one of the caller's books
// @Tags      books
// @Security  Bearer
// @Produce   json
// @Param     id  path     int true "book id"
// @Success   200 {object} model.Book
// @Failure   401 {object} errs.ErrorResponse
// @Failure   404 {object} errs.ErrorResponse
// @Router    /books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := bookID(c)
	if err != nil {
		return err
	}
	book, err := h.bookSvc.GetBook(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// UpdateBook godoc
// @Summary   Partially update one of the caller's books
// @Tags      books
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id   path     int                     true "book id"
// @Param     book body     model.BookCreateRequest true "fields to change, all optional"
// @Success   200  {object} model.Book
// @Failure   401  {object} errs.ErrorResponse
// @Failure   404  {object} errs.ErrorResponse
// @Failure   422  {object} errs.ErrorResponse
// @Router    /books/{id} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := bookID(c)
	if err != nil {
		return err
	}
	var req model.BookUpdateRequest
	if err := binder.BindBody(c, &req); err != nil {
		return bindError("body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	book, err := h.bookSvc.UpdateBook(c.Request().Context(), user.ID, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary   Delete one of the caller's books
// @Tags      books
// @Security  Bearer
// @Param     id  path int true "book id"
// @Success   204
// @Failure   401 {object} errs.ErrorResponse
// @Failure   404 {object} errs.ErrorResponse
// @Router    /books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := bookID(c)
	if err != nil {
		return err
	}
	if err := h.bookSvc.DeleteBook(c.Request().Context(), user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bookID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, validate.Errors{{Field: "id", Tag: "int", Message: "value is not a valid integer"}}
	}
	return id, nil
}
