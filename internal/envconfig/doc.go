// Package envconfig resolves a declarative schema of settings against a
// name-to-string source (usually the process environment). Resolution is a
// pure function: it either returns a fully populated, immutable Config or a
// ResolutionError listing every missing or malformed setting in schema order.
// Values of settings flagged as secret never appear in errors or logs.
package envconfig
