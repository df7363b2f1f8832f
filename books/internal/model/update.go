package model

import (
	"bytes"
	"encoding/json"

	"github.com/Astemirdum/book-tracker/pkg/validate"
)

// Optional records whether a JSON key was present at all. Null marks an
// explicit null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// BookUpdateRequest is a partial update: only keys present in the body change.
type BookUpdateRequest struct {
	Title     Optional[string] `json:"title"`
	Author    Optional[string] `json:"author"`
	Status    Optional[Status] `json:"status"`
	StartDate Optional[Date]   `json:"start_date"`
	EndDate   Optional[Date]   `json:"end_date"`
}

func (r BookUpdateRequest) Validate() error {
	var errs validate.Errors
	notNullText := func(field string, o Optional[string]) {
		switch {
		case !o.Set:
		case o.Null:
			errs = append(errs, validate.FieldError{Field: field, Tag: "required", Message: "value may not be null"})
		case o.Value == "":
			errs = append(errs, validate.FieldError{Field: field, Tag: "required", Message: "field required"})
		case len(o.Value) > 500:
			errs = append(errs, validate.FieldError{Field: field, Tag: "max", Message: "value must be at most 500 characters"})
		}
	}
	notNullText("title", r.Title)
	notNullText("author", r.Author)

	if r.Status.Set {
		if r.Status.Null {
			errs = append(errs, validate.FieldError{Field: "status", Tag: "required", Message: "value may not be null"})
		} else if !r.Status.Value.Valid() {
			errs = append(errs, validate.FieldError{Field: "status", Tag: "oneof", Message: "value must be one of [TO_READ READING DONE]"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r BookUpdateRequest) Empty() bool {
	return !r.Title.Set && !r.Author.Set && !r.Status.Set && !r.StartDate.Set && !r.EndDate.Set
}

// Apply merges the present fields into book. Dates accept null to clear them.
func (r BookUpdateRequest) Apply(book *Book) {
	if r.Title.Set && !r.Title.Null {
		book.Title = r.Title.Value
	}
	if r.Author.Set && !r.Author.Null {
		book.Author = r.Author.Value
	}
	if r.Status.Set && !r.Status.Null {
		book.Status = r.Status.Value
	}
	if r.StartDate.Set {
		book.StartDate = datePtr(r.StartDate)
	}
	if r.EndDate.Set {
		book.EndDate = datePtr(r.EndDate)
	}
}

func datePtr(o Optional[Date]) *Date {
	if o.Null {
		return nil
	}
	d := o.Value
	return &d
}
