package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"lexdesk.app/deedwatch/internal/extract"
)

const (
	notBlankTag    = "notblank"
	extractModeTag = "extract_mode"
)

// Registers the custom binding tags on gin's validator.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report JSON field names instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlank)
	_ = v.RegisterValidation(extractModeTag, extractMode)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func extractMode(fl validator.FieldLevel) bool {
	_, err := extract.ParseMode(fl.Field().String())
	return err == nil
}

// ValidationMessage turns a binding error into a short client-facing message.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required", notBlankTag:
		return fe.Field() + " is required"
	case extractModeTag:
		return fe.Field() + " must be csv or asiento_pdf"
	default:
		return fe.Field() + " is invalid"
	}
}
