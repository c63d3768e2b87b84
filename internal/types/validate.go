package types

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldWarning is an advisory validation message for one field. Warnings
// never prevent a value from being stored.
type FieldWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,19}$`)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

func personalInfoValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
		})
	})
	return validate
}

// ValidatePersonalInfo checks the contact fields and returns one warning per
// malformed value. An empty result means nothing to flag.
func ValidatePersonalInfo(p PersonalInfo) []FieldWarning {
	err := personalInfoValidator().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldWarning{{Field: "(root)", Message: err.Error()}}
	}

	warnings := make([]FieldWarning, 0, len(verrs))
	for _, fe := range verrs {
		warnings = append(warnings, FieldWarning{Field: fe.Field(), Message: warningMessage(fe.Tag())})
	}
	return warnings
}

func warningMessage(tag string) string {
	switch tag {
	case "email":
		return "invalid email address"
	case "phone":
		return "invalid phone number"
	case "url":
		return "invalid URL"
	default:
		return "invalid value"
	}
}
