package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"gitlab.com/umaxship/console/internal/apperrors"
)

var patterns = map[string]*regexp.Regexp{
	"pincode":      regexp.MustCompile(`^[1-9][0-9]{5}$`),
	"phone":        regexp.MustCompile(`^[0-9]{10}$`),
	"personname":   regexp.MustCompile(`^[A-Za-z][A-Za-z .']*$`),
	"addressline":  regexp.MustCompile(`^[A-Za-z0-9 .,/#&()'-]+$`),
	"alphanumdash": regexp.MustCompile(`^[A-Za-z0-9_-]+$`),
}

type Validator struct {
	v *validator.Validate
}

type Option func(*validator.Validate)

// WithCustomType lets a package teach the validator how to read its own
// value types, e.g. decimal measures compared with gt=0.
func WithCustomType(fn validator.CustomTypeFunc, types ...any) Option {
	return func(v *validator.Validate) {
		v.RegisterCustomTypeFunc(fn, types...)
	}
}

func New(opts ...Option) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, re := range patterns {
		re := re
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}

	for _, opt := range opts {
		opt(v)
	}

	return &Validator{v: v}
}

// Struct validates s and converts validator errors into a
// *apperrors.ValidationError carrying the JSON names of the offending fields.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldPath(fe))
	}
	return apperrors.NewValidationError(fields...)
}

// fieldPath keeps the path from the first slice element on, so nested rows
// read as "order_items[1].sku"; anything else is reported by its own name.
func fieldPath(fe validator.FieldError) string {
	segments := strings.Split(fe.Namespace(), ".")
	for i, seg := range segments {
		if strings.Contains(seg, "[") {
			return strings.Join(segments[i:], ".")
		}
	}
	return fe.Field()
}
