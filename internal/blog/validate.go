package blog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form name rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

type articleForm struct {
	Title string `form:"title" validate:"required,max=300"`
	Body  string `form:"body" validate:"required,max=100000"`
}

type nameForm struct {
	Name string `form:"name" validate:"required,max=100"`
}

type commentForm struct {
	Body string `form:"body" validate:"required,max=2000"`
}

// validateForm runs struct validation and converts failures to FieldErrors.
// It returns nil when the form is valid.
func validateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = formatFieldError(fe)
	}
	return fields
}

// formatFieldError formats a single field validation error.
func formatFieldError(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "max":
		return fmt.Sprintf("%s is too long (max %s characters).", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
