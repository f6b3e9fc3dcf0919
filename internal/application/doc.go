// Package application provides application initialization and dependency wiring.
// It turns a resolved config.Config into handlers, routers and an HTTP server,
// keeping the main package focused on CLI parsing and orchestration.
package application
