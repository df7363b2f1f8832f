package validate_test

import (
	"testing"

	"github.com/Astemirdum/book-tracker/pkg/validate"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type signUp struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=8"`
	Page     int    `query:"page" validate:"min=1"`
}

type ranged struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (r ranged) Validate() error {
	if r.To < r.From {
		return validate.Errors{{Field: "to", Tag: "range", Message: "to before from"}}
	}
	return nil
}

func TestCustomValidator_Validate(t *testing.T) {
	t.Parallel()
	v := validate.NewCustomValidator()

	require.NoError(t, v.Validate(signUp{Email: "a@b.io", Password: "secret", Page: 1}))

	err := v.Validate(signUp{Email: "nope", Password: "far-too-long", Page: 0})
	var vErrs validate.Errors
	require.True(t, errors.As(err, &vErrs))
	require.Equal(t, validate.Errors{
		{Field: "email", Tag: "email", Message: "value is not a valid email address"},
		{Field: "password", Tag: "max", Message: "value must be at most 8 characters"},
		{Field: "page", Tag: "min", Message: "value must be greater than or equal to 1"},
	}, vErrs)
	require.Equal(t,
		"email: value is not a valid email address; password: value must be at most 8 characters; page: value must be greater than or equal to 1",
		vErrs.Error())
}

func TestCustomValidator_SelfValidator(t *testing.T) {
	t.Parallel()
	v := validate.NewCustomValidator()

	require.NoError(t, v.Validate(ranged{From: 1, To: 2}))

	err := v.Validate(ranged{From: 2, To: 1})
	var vErrs validate.Errors
	require.True(t, errors.As(err, &vErrs))
	require.Equal(t, "to", vErrs[0].Field)
}
