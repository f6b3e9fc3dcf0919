// Package config declares the settings the service needs at startup and
// resolves them from CLI overrides and environment variables with precedence:
// CLI overrides > Environment variables > Defaults. Resolution fails fast with
// every missing or malformed setting reported at once. It exposes strongly
// typed settings to the rest of the application.
package config
