package envconfig

import (
	"errors"
	"fmt"
)

// SettingSpec declares a single setting.
type SettingSpec struct {
	Name     string `json:"name" yaml:"name"`
	Required bool   `json:"required" yaml:"required"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	// Default is the raw value used when an optional setting is absent. Empty
	// means the kind's zero value.
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Secret      bool   `json:"secret" yaml:"secret"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Schema is an ordered list of settings. Order only affects error ordering.
type Schema []SettingSpec

// Validate rejects schemas that cannot be resolved meaningfully.
func (s Schema) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(s))
	for i, spec := range s {
		if spec.Name == "" {
			errs = append(errs, fmt.Errorf("setting #%d has no name", i))
			continue
		}
		if _, dup := seen[spec.Name]; dup {
			errs = append(errs, fmt.Errorf("%s declared more than once", spec.Name))
		}
		seen[spec.Name] = struct{}{}
		if !spec.Kind.valid() {
			errs = append(errs, fmt.Errorf("%s has unknown kind %d", spec.Name, int(spec.Kind)))
		}
		if spec.Required && spec.Default != "" {
			errs = append(errs, fmt.Errorf("%s is required and cannot declare a default", spec.Name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSchema, errors.Join(errs...))
	}
	return nil
}

// Lint returns advisory warnings, such as settings whose name suggests a
// secret but which are not flagged as one.
func (s Schema) Lint() []string {
	var warnings []string
	for _, spec := range s {
		if !spec.Secret && LooksSecret(spec.Name) {
			warnings = append(warnings, fmt.Sprintf("%s looks like a secret but is not flagged secret", spec.Name))
		}
	}
	return warnings
}

// Lookup returns the setting declared for name.
func (s Schema) Lookup(name string) (SettingSpec, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec, true
		}
	}
	return SettingSpec{}, false
}
