package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayouts lists the accepted spellings of a reminder date, tried in order.
// Layouts without a zone are read in time.Local.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const (
	MsgRequired    = "Campo obrigatório"
	MsgPositive    = "Deve ser um número maior que zero"
	MsgTooLongFmt  = "Deve ter no máximo %s caracteres"
	MsgInvalidDate = "Data inválida"
	MsgInvalid     = "Valor inválido"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("datetime_any", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ParseDate parses s using the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// Struct checks v against its `validate` tags and returns per-field messages
// keyed by the json field name, or nil when v is valid.
func Struct(v any) Errors {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"_": MsgInvalid}
	}

	out := Errors{}
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "gt", "min":
		return MsgPositive
	case "max":
		return fmt.Sprintf(MsgTooLongFmt, fe.Param())
	case "datetime_any":
		return MsgInvalidDate
	default:
		return MsgInvalid
	}
}
