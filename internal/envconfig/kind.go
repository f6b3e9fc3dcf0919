package envconfig

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Kind is the declared type of a setting.
type Kind int

const (
	String Kind = iota
	Int
	Bool
	URL
)

var kindNames = []string{"string", "int", "bool", "url"}

func (k Kind) String() string {
	if k.valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k >= String && k <= URL
}

// ParseKind maps a case-insensitive kind name to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(name, n) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// coerce converts raw according to the kind. The returned reason is zero on
// success.
func (k Kind) coerce(raw string) (Value, Reason) {
	switch k {
	case Int:
		n, ok := parseInt(raw)
		if !ok {
			return Value{}, InvalidInt
		}
		return Value{kind: Int, i: n}, 0
	case Bool:
		b, ok := parseBool(raw)
		if !ok {
			return Value{}, InvalidBool
		}
		return Value{kind: Bool, b: b}, 0
	case URL:
		if !isAbsoluteURL(raw) {
			return Value{}, InvalidURL
		}
		return Value{kind: URL, s: raw}, 0
	default:
		return Value{kind: String, s: raw}, 0
	}
}

func parseInt(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseBool accepts true/1/yes and false/0/no/"" in any letter case.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no", "":
		return false, true
	default:
		return false, false
	}
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
