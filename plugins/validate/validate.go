// Package validate checks settings values after they are built.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sxwebdev/xsettings/plugins"
	"github.com/sxwebdev/xsettings/schema"
)

const tag = "validate"

func init() {
	plugins.RegisterTag(tag)
}

type CustomValidator func(any) error

type validate interface {
	Validate() error
}

// structValidator caches struct metadata and is safe for concurrent use.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		key, ok := schema.KeyOf(f)
		if !ok {
			return ""
		}
		return key
	})
	return v
}

type walker struct {
	config          any
	customValidator []CustomValidator
}

// New returns an validator plugin.
// It accepts a list of CustomValidator functions.
//
// The walked value is checked in this order:
//   - the Validate() method of the value and of each of its direct fields
//   - `validate` struct tags, with go-playground/validator
//   - the CustomValidator functions
//
// Example:
//
//	type Budget struct {
//		MaxTokens int `json:"max_tokens" validate:"gte=1"`
//	}
//
//	func (b Budget) Validate() error {
//		if b.MaxTokens > 1<<20 {
//			return fmt.Errorf("max_tokens is too large")
//		}
//		return nil
//	}
func New(validators ...CustomValidator) plugins.Plugin {
	v := &walker{}
	for _, validator := range validators {
		if validator == nil {
			continue
		}
		v.customValidator = append(v.customValidator, validator)
	}
	return v
}

func (v *walker) Parse() error {
	if v == nil || v.config == nil {
		return nil
	}

	val := reflect.ValueOf(v.config)
	for val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct || !val.CanAddr() {
		return validateElem(v.config)
	}

	if err := validateElem(val.Addr().Interface()); err != nil {
		return err
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		if !typ.Field(i).IsExported() {
			continue
		}

		if err := validateElem(val.Field(i).Addr().Interface()); err != nil {
			return err
		}
	}

	if err := Struct(val.Addr().Interface()); err != nil {
		return err
	}

	for _, validator := range v.customValidator {
		if err := validator(v.config); err != nil {
			return err
		}
	}

	return nil
}

func (v *walker) Walk(config any) error {
	v.config = config
	return nil
}

func validateElem(elem any) error {
	// try to validate with Validate() error
	if tmp, ok := elem.(validate); ok {
		if err := tmp.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Struct checks the `validate` tags of s. Errors name fields by their
// mapping key path, e.g. "budget.max_tokens: failed on gte=1".
func Struct(s any) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed on %s", fieldPath(fe), rule(fe)))
	}

	return errors.New(strings.Join(msgs, "; "))
}

// fieldPath strips the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func rule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
