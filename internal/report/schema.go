package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/eugenenazirov/envguard/internal/envconfig"
)

type schemaEntry struct {
	Name        string `json:"name" yaml:"name"`
	Kind        string `json:"kind" yaml:"kind"`
	Required    bool   `json:"required" yaml:"required"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Secret      bool   `json:"secret,omitempty" yaml:"secret,omitempty"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Schema documents the schema. The text format is a .env.example style file
// grouped by category; defaults of secret settings are never printed.
func Schema(w io.Writer, schema envconfig.Schema, format Format) error {
	entries := make([]schemaEntry, 0, len(schema))
	for _, spec := range schema {
		e := schemaEntry{
			Name:        spec.Name,
			Kind:        spec.Kind.String(),
			Required:    spec.Required,
			Secret:      spec.Secret,
			Category:    string(envconfig.Categorize(spec.Name)),
			Description: spec.Description,
		}
		if !spec.Secret {
			e.Default = spec.Default
		}
		entries = append(entries, e)
	}

	if format != FormatText {
		return encode(w, format, entries)
	}

	var b strings.Builder
	for i, g := range groupByCategory(entries, func(e schemaEntry) string { return e.Name }) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %s\n", g.category)
		for _, e := range g.items {
			b.WriteString(schemaComment(e))
			fmt.Fprintf(&b, "%s=%s\n", e.Name, e.Default)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func schemaComment(e schemaEntry) string {
	attrs := []string{e.Kind}
	if e.Required {
		attrs = append(attrs, "required")
	}
	if e.Secret {
		attrs = append(attrs, "secret")
	}
	if e.Description == "" {
		return fmt.Sprintf("# (%s)\n", strings.Join(attrs, ", "))
	}
	return fmt.Sprintf("# %s (%s)\n", e.Description, strings.Join(attrs, ", "))
}
