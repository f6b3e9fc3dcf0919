package envconfig

import "os"

// Source provides raw setting values by name. The boolean result is false
// when the key is absent; a present key may still hold an empty string.
type Source interface {
	Lookup(name string) (string, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(name string) (string, bool)

func (f SourceFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// EnvSource reads the process environment.
type EnvSource struct{}

func (EnvSource) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapSource serves values from a map. A nil map is an empty source.
type MapSource map[string]string

func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Chain returns a Source that consults sources in order and returns the first
// hit. Nil sources are skipped.
func Chain(sources ...Source) Source {
	return SourceFunc(func(name string) (string, bool) {
		for _, src := range sources {
			if src == nil {
				continue
			}
			if v, ok := src.Lookup(name); ok {
				return v, true
			}
		}
		return "", false
	})
}
