// Package report renders configuration diagnostics for operators: resolution
// failures, the resolved (redacted) settings and the schema itself, as plain
// text, JSON or YAML. Secret values are never written.
package report
