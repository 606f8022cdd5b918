package validation

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance with the model enumerations registered
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Custom tags bound to the closed enumerations of the uml package
	mustRegister("visibility", func(s string) bool {
		_, err := uml.ParseVisibility(s)
		return err == nil
	})
	mustRegister("attrtype", func(s string) bool {
		_, err := uml.ParseAttributeType(s)
		return err == nil
	})
	mustRegister("returntype", func(s string) bool {
		_, err := uml.ParseReturnType(s)
		return err == nil
	})
}

func mustRegister(tag string, ok func(string) bool) {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Report lists the draft fields that failed validation, using form field names.
type Report struct {
	Missing []string // required but empty
	Invalid []string // outside the allowed enumeration
}

// OK reports whether the draft passed every check.
func (r Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Invalid) == 0
}

// CheckDraft runs the struct tags of a form draft. The returned error is only
// set when draft is not a struct; field failures go in the Report.
func CheckDraft(draft any) (Report, error) {
	var report Report
	if draft == nil {
		return report, errors.New("draft cannot be nil")
	}

	err := validate.Struct(draft)
	if err == nil {
		return report, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return report, err
	}

	for _, e := range validationErrs {
		field := fieldName(e.Field())
		switch e.Tag() {
		case "required":
			report.Missing = append(report.Missing, field)
		default:
			report.Invalid = append(report.Invalid, field)
		}
	}

	return report, nil
}

// fieldName converts a Go field name to its form name ("ReturnType" -> "returnType")
func fieldName(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
