// Package validator wraps go-playground/validator with EN translations
// and JSON field names in error messages.
package validator

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

func Validate(ctx context.Context, value any) error {
	validate, enTranslator := newValidator()
	if err := validate.StructCtx(ctx, value); err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			return processError(validationErrs, enTranslator)
		default:
			panic(err)
		}
	}
	return nil
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()

	// Register default EN translator
	enLocale := en.New()
	enTranslator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(validate, enTranslator); err != nil {
		panic(errors.PrefixError(err, "translator was not registered"))
	}

	// Use JSON field name in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return validate, enTranslator
}

func processError(errs validator.ValidationErrors, translator ut.Translator) error {
	out := errors.NewMultiError()
	for _, e := range errs {
		out.Append(errors.New(strings.TrimSpace(e.Translate(translator))))
	}
	return out.ErrorOrNil()
}
