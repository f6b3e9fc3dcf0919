package envconfig

// Resolve applies schema to src. It returns a *ResolutionError listing every
// failing setting, or an error wrapping ErrInvalidSchema when the schema is
// malformed. The returned Config is only non-nil on full success.
func Resolve(schema Schema, src Source) (*Config, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = MapSource(nil)
	}

	cfg := &Config{
		order:   make([]string, 0, len(schema)),
		values:  make(map[string]Value, len(schema)),
		secrets: make(map[string]bool),
	}
	var failures []*FieldError

	for _, spec := range schema {
		raw, ok := src.Lookup(spec.Name)
		if !ok {
			if spec.Required {
				failures = append(failures, newFieldError(spec, Missing, ""))
				continue
			}
			if spec.Default == "" {
				cfg.set(spec, Value{kind: spec.Kind})
				continue
			}
			raw = spec.Default
		}

		v, reason := spec.Kind.coerce(raw)
		if reason != 0 {
			failures = append(failures, newFieldError(spec, reason, raw))
			continue
		}
		cfg.set(spec, v)
	}

	if len(failures) > 0 {
		return nil, &ResolutionError{Errors: failures}
	}
	return cfg, nil
}

func (c *Config) set(spec SettingSpec, v Value) {
	c.order = append(c.order, spec.Name)
	c.values[spec.Name] = v
	if spec.Secret {
		c.secrets[spec.Name] = true
	}
}
