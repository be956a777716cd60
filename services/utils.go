package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report the json names of the fields, they are what the clients send.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateRecord returns a 400 listing every failing field of v.
func validateRecord(kind string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.New(fmt.Sprintf("invalid %s", kind), errors.BadRequest(), errors.WithCause(err))
	}

	reasons := make([]string, len(fieldErrors))
	for i, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			reasons[i] = fmt.Sprintf("%s is required", fe.Field())
		case "email":
			reasons[i] = fmt.Sprintf("%s must be an email", fe.Field())
		default:
			reasons[i] = fmt.Sprintf("%s must satisfy %s %s", fe.Field(), fe.Tag(), fe.Param())
		}
	}

	return errors.New(
		fmt.Sprintf("invalid %s: %s", kind, strings.Join(reasons, ", ")),
		errors.BadRequest(),
	)
}

func requireAdmin(caller deptlib.Identity) error {
	if !caller.IsAdmin {
		return errors.New("admin only", errors.Forbidden())
	}
	return nil
}

func errNotFound(kind string, id int) error {
	return errors.New(fmt.Sprintf("%s %d not found", kind, id), errors.NotFound())
}
