package envconfig

import (
	"errors"
	"fmt"
	"strings"
)

// RedactedMarker replaces the value of a secret setting in diagnostics.
const RedactedMarker = "value redacted"

var (
	// ErrMissing is returned when a required setting is absent from the source.
	ErrMissing = errors.New("required setting is missing")
	// ErrInvalidBool is returned when a value is outside the accepted boolean vocabulary.
	ErrInvalidBool = errors.New("invalid boolean")
	// ErrInvalidInt is returned when a value is not a base-10 integer.
	ErrInvalidInt = errors.New("invalid integer")
	// ErrInvalidURL is returned when a value is not an absolute URL with scheme and host.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrInvalidSchema is returned when the schema itself is malformed.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Reason classifies a per-setting failure.
type Reason int

const (
	Missing Reason = iota + 1
	InvalidBool
	InvalidInt
	InvalidURL
)

var reasonNames = map[Reason]string{
	Missing:     "Missing",
	InvalidBool: "InvalidBool",
	InvalidInt:  "InvalidInt",
	InvalidURL:  "InvalidURL",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Err returns the sentinel error matching the reason.
func (r Reason) Err() error {
	switch r {
	case Missing:
		return ErrMissing
	case InvalidBool:
		return ErrInvalidBool
	case InvalidInt:
		return ErrInvalidInt
	case InvalidURL:
		return ErrInvalidURL
	default:
		return nil
	}
}

// FieldError describes why a single setting could not be resolved.
type FieldError struct {
	Key    string
	Reason Reason
	Secret bool

	// value holds the offending raw value for non-secret settings only.
	value string
}

func newFieldError(spec SettingSpec, reason Reason, raw string) *FieldError {
	fe := &FieldError{Key: spec.Name, Reason: reason, Secret: spec.Secret}
	if !spec.Secret {
		fe.value = raw
	}
	return fe
}

// Value returns the printable offending value: the raw value for regular
// settings, RedactedMarker for secret ones and "" for missing settings.
func (e *FieldError) Value() string {
	if e.Reason == Missing {
		return ""
	}
	if e.Secret {
		return RedactedMarker
	}
	return e.value
}

func (e *FieldError) Error() string {
	if e.Reason == Missing {
		return fmt.Sprintf("%s: %v", e.Key, ErrMissing)
	}
	if e.Secret {
		return fmt.Sprintf("%s: %v (%s)", e.Key, e.Reason.Err(), RedactedMarker)
	}
	return fmt.Sprintf("%s: %v %q", e.Key, e.Reason.Err(), e.value)
}

func (e *FieldError) Unwrap() error {
	return e.Reason.Err()
}

// ResolutionError aggregates every failure of a single resolution pass in
// schema order.
type ResolutionError struct {
	Errors []*FieldError
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	if len(e.Errors) == 1 {
		b.WriteString("configuration invalid: 1 problem")
	} else {
		fmt.Fprintf(&b, "configuration invalid: %d problems", len(e.Errors))
	}
	for _, fe := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(fe.Error())
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}

// Keys returns the failing setting names in schema order.
func (e *ResolutionError) Keys() []string {
	keys := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		keys[i] = fe.Key
	}
	return keys
}

// ByReason returns the failures recorded with the given reason.
func (e *ResolutionError) ByReason(reason Reason) []*FieldError {
	var out []*FieldError
	for _, fe := range e.Errors {
		if fe.Reason == reason {
			out = append(out, fe)
		}
	}
	return out
}
