package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/timezone"
)

const utcOffsetTag = "utcoffset"

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")

	validate = validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, translator)
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation(utcOffsetTag, func(fl validator.FieldLevel) bool {
		_, ok := timezone.ParseOffset(fl.Field().String())
		return ok
	})
	_ = validate.RegisterTranslation(utcOffsetTag, translator, func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " must look like UTC+05:30"
		})
}

// DefaultValidator returns the shared validator. It reports fields by their JSON names
// and knows the "utcoffset" tag for UTC±H[:MM] descriptors.
func DefaultValidator() *validator.Validate {
	return validate
}

// validationError wraps a validator failure, listing each field problem in the message.
func validationError(err error, message string) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fe.Translate(translator))
		}
		message = message + ": " + strings.Join(details, "; ")
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
