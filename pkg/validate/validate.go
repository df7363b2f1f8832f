package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type CustomValidator struct {
	validator *validator.Validate
}

// SelfValidator is implemented by requests whose rules can not be expressed
// with struct tags. It runs after the tag based validation succeeds.
type SelfValidator interface {
	Validate() error
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return fromValidator(vErrs)
		}
		return err
	}
	if sv, ok := i.(SelfValidator); ok {
		return sv.Validate()
	}
	return nil
}

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func fromValidator(vErrs validator.ValidationErrors) Errors {
	out := make(Errors, 0, len(vErrs))
	for _, fe := range vErrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "oneof":
		return fmt.Sprintf("value must be one of [%s]", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("value must be greater than or equal to %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("value must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("value must be less than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}

// fieldName reports fields by their wire name: json, then form, then query.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "query"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
