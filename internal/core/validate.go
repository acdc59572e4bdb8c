package core

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a single rejected draft field. Validation runs
// before any network call; a failing draft is never submitted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("ledgerdate", func(fl validator.FieldLevel) bool {
		return ValidLedgerDate(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks all draft fields and returns a *ValidationError for the
// first violation: ledger date format, positive amount, description length,
// non-empty payment method and category, known type.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
	}
	return err
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "ledgerdate":
		return `must match the form "YYYY. MM. DD"`
	case "gt":
		return "must be a positive amount"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be income or expense"
	default:
		return "is invalid"
	}
}
