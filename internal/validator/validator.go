// Package validator hooks English-translated validation errors into Gin's
// binding engine and exposes the one Bind helper handlers use.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// trans is the singleton English translator for validation errors.
var trans ut.Translator

// Setup registers JSON tag names and English translations on Gin's binding
// engine. Call once during application startup.
func Setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Report errors under the wire name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	en_translations.RegisterDefaultTranslations(v, trans)
}

// TranslateErrors maps a binding error to field name → human message.
// Non-validation failures (malformed JSON, wrong types) come back under a
// single "detail" key.
func TranslateErrors(err error) map[string]string {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"detail": err.Error()}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Translate(trans)
	}
	return fields
}

// Bind binds and validates the request body into dst. Returns nil on
// success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
