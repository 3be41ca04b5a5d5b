package xsettings

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sxwebdev/xsettings/schema"
)

var (
	// ErrUnexpectedType is returned for values that are not settings structs.
	ErrUnexpectedType = schema.ErrUnexpectedType

	// ErrInvalid wraps every construction failure: unknown keys, type
	// mismatches and failed validation.
	ErrInvalid = errors.New("xsettings: invalid settings")

	// ErrDuplicateComponent is returned when a component name is registered twice.
	ErrDuplicateComponent = errors.New("xsettings: component already registered")
)

// UnknownFieldsError represents an error when unknown keys are found in a
// settings mapping.
type UnknownFieldsError struct {
	// Type is the settings type the mapping was decoded into.
	Type string
	// Fields contains the dotted paths of unknown keys.
	Fields []string
}

// Error implements the error interface.
func (e *UnknownFieldsError) Error() string {
	if len(e.Fields) == 0 {
		return "unknown fields found in settings"
	}

	fields := append([]string(nil), e.Fields...)
	sort.Strings(fields)

	return fmt.Sprintf("unknown fields found in %s: %s", e.Type, strings.Join(fields, ", "))
}

// Is makes errors.Is(err, ErrInvalid) hold for unknown fields.
func (e *UnknownFieldsError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(typ string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalid, typ, err)
}
