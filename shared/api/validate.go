package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mesto-decin/parking-permits/shared/errors"
	"github.com/mesto-decin/parking-permits/shared/zones"
)

// Validator checks request DTOs against their validation tags. The
// "zone" tag is bound to the zone catalog so unknown zone names are
// rejected at the edge. Validation is pure and reports every violated
// field in one pass.
type Validator struct {
	validate *validator.Validate
	catalog  *zones.Catalog
}

func NewValidator(catalog *zones.Catalog) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("zone", func(fl validator.FieldLevel) bool {
		return catalog.Known(fl.Field().String())
	})

	return &Validator{validate: v, catalog: catalog}
}

// Check validates body and returns a ValidationError listing every
// violated field, or nil when the body is valid.
func (v *Validator) Check(body any) *errors.ValidationError {
	err := v.validate.Struct(body)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &errors.ValidationError{Details: []errors.FieldError{
			{Field: "body", Message: err.Error()},
		}}
	}

	details := make([]errors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, errors.FieldError{
			Field:   fe.Field(),
			Message: v.messageFor(fe),
		})
	}
	return &errors.ValidationError{Details: details}
}

// messageFor renders the citizen-facing message for one violation,
// matching the wording the application form shows.
func (v *Validator) messageFor(fe validator.FieldError) string {
	if fe.Tag() == "zone" {
		return "Zone must be one of: " + strings.Join(v.catalog.Names(), ", ")
	}
	switch fe.Field() {
	case "validFrom":
		return "Valid from date is required"
	case "validTo":
		return "Valid to date is required"
	case "price":
		return "Price must be a positive number"
	case "firstname":
		return "First name is required"
	case "lastname":
		return "Last name is required"
	case "email":
		return "Valid email is required"
	case "permitDuration", "duration":
		return `Permit duration must be either "quarter" or "year"`
	case "assertion":
		return "Assertion is required"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
