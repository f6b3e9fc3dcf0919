package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eugenenazirov/envguard/internal/envconfig"
)

type failureEntry struct {
	Key      string `json:"key" yaml:"key"`
	Reason   string `json:"reason" yaml:"reason"`
	Category string `json:"category" yaml:"category"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Secret   bool   `json:"secret,omitempty" yaml:"secret,omitempty"`
}

type failureReport struct {
	Valid   bool           `json:"valid" yaml:"valid"`
	Message string         `json:"message" yaml:"message"`
	Errors  []failureEntry `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type settingEntry struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value" yaml:"value"`
	Kind     string `json:"kind" yaml:"kind"`
	Category string `json:"category" yaml:"category"`
	Secret   bool   `json:"secret,omitempty" yaml:"secret,omitempty"`
}

type settingsReport struct {
	Valid    bool           `json:"valid" yaml:"valid"`
	Settings []settingEntry `json:"settings" yaml:"settings"`
}

// Failure writes a report for err. A *envconfig.ResolutionError is expanded
// into one entry per setting; any other error is reported by its message.
func Failure(w io.Writer, err error, format Format) error {
	var resErr *envconfig.ResolutionError
	if !errors.As(err, &resErr) {
		if format == FormatText {
			_, werr := fmt.Fprintf(w, "%v\n", err)
			return werr
		}
		return encode(w, format, failureReport{Message: err.Error()})
	}

	if format == FormatText {
		_, werr := fmt.Fprintf(w, "%s\n", resErr.Error())
		return werr
	}

	rep := failureReport{
		Message: fmt.Sprintf("%d setting(s) failed to resolve", len(resErr.Errors)),
		Errors:  make([]failureEntry, 0, len(resErr.Errors)),
	}
	for _, fe := range resErr.Errors {
		rep.Errors = append(rep.Errors, failureEntry{
			Key:      fe.Key,
			Reason:   fe.Reason.String(),
			Category: string(envconfig.Categorize(fe.Key)),
			Value:    fe.Value(),
			Secret:   fe.Secret,
		})
	}
	return encode(w, format, rep)
}

// Settings writes the resolved configuration with secrets redacted. In text
// format verbose output groups settings by category.
func Settings(w io.Writer, cfg *envconfig.Config, format Format, verbose bool) error {
	redacted := cfg.Redacted()
	entries := make([]settingEntry, 0, len(redacted))
	for _, name := range cfg.Names() {
		v, _ := cfg.Value(name)
		entries = append(entries, settingEntry{
			Name:     name,
			Value:    redacted[name],
			Kind:     v.Kind().String(),
			Category: string(envconfig.Categorize(name)),
			Secret:   cfg.IsSecret(name),
		})
	}

	if format != FormatText {
		return encode(w, format, settingsReport{Valid: true, Settings: entries})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "configuration valid: %d settings\n", len(entries))
	if !verbose {
		for _, e := range entries {
			fmt.Fprintf(&b, "%s=%s\n", e.Name, e.Value)
		}
	} else {
		for _, g := range groupByCategory(entries, func(e settingEntry) string { return e.Name }) {
			fmt.Fprintf(&b, "\n# %s\n", g.category)
			for _, e := range g.items {
				fmt.Fprintf(&b, "%s=%s (%s)\n", e.Name, e.Value, e.Kind)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type group[T any] struct {
	category envconfig.Category
	items    []T
}

// groupByCategory buckets items by envconfig.Categorize, keeping the display
// order of categories and the input order within each bucket.
func groupByCategory[T any](items []T, name func(T) string) []group[T] {
	buckets := make(map[envconfig.Category][]T)
	for _, item := range items {
		cat := envconfig.Categorize(name(item))
		buckets[cat] = append(buckets[cat], item)
	}

	var out []group[T]
	for _, cat := range envconfig.Categories() {
		if len(buckets[cat]) > 0 {
			out = append(out, group[T]{category: cat, items: buckets[cat]})
		}
	}
	return out
}
