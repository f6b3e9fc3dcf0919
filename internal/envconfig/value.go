package envconfig

import (
	"strconv"

	"go.uber.org/zap/zapcore"
)

// Value is a coerced setting value.
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
}

// Kind reports the kind the value was coerced to.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer held by an Int value.
func (v Value) Int() int { return v.i }

// Bool returns the boolean held by a Bool value.
func (v Value) Bool() bool { return v.b }

// String formats the value the way it would be written in the environment.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.Itoa(v.i)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// Interface returns the value as int, bool or string.
func (v Value) Interface() any {
	switch v.kind {
	case Int:
		return v.i
	case Bool:
		return v.b
	default:
		return v.s
	}
}

// Config is a fully resolved configuration. It is immutable; accessors return
// copies and there are no setters.
type Config struct {
	order   []string
	values  map[string]Value
	secrets map[string]bool
}

// Names returns the setting names in schema order.
func (c *Config) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Value returns the typed value of name.
func (c *Config) Value(name string) (Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// String returns the value of a String setting, or "" if name is unknown.
func (c *Config) String(name string) string {
	return c.values[name].s
}

// URL returns the validated value of a URL setting, or "" if it was optional
// and unset.
func (c *Config) URL(name string) string {
	return c.values[name].s
}

// Int returns the value of an Int setting, or 0 if name is unknown.
func (c *Config) Int(name string) int {
	return c.values[name].i
}

// Bool returns the value of a Bool setting, or false if name is unknown.
func (c *Config) Bool(name string) bool {
	return c.values[name].b
}

// IsSecret reports whether name was declared secret.
func (c *Config) IsSecret(name string) bool {
	return c.secrets[name]
}

// Redacted returns printable values keyed by name with secrets replaced by
// RedactedMarker. Unset optional secrets stay empty so operators can see they
// are not configured.
func (c *Config) Redacted() map[string]string {
	out := make(map[string]string, len(c.values))
	for _, name := range c.order {
		out[name] = c.display(name)
	}
	return out
}

func (c *Config) display(name string) string {
	v := c.values[name]
	if c.secrets[name] && v.String() != "" {
		return RedactedMarker
	}
	return v.String()
}

// MarshalLogObject implements zapcore.ObjectMarshaler with secrets redacted.
func (c *Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, name := range c.order {
		v := c.values[name]
		if c.secrets[name] {
			enc.AddString(name, c.display(name))
			continue
		}
		switch v.kind {
		case Int:
			enc.AddInt(name, v.i)
		case Bool:
			enc.AddBool(name, v.b)
		default:
			enc.AddString(name, v.s)
		}
	}
	return nil
}
