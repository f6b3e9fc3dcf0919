package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/envguard/internal/application"
	"github.com/eugenenazirov/envguard/internal/config"
	"github.com/eugenenazirov/envguard/internal/envconfig"
	"github.com/eugenenazirov/envguard/internal/logging"
	"github.com/eugenenazirov/envguard/internal/report"
)

const (
	exitOK            = 0
	exitInvalidConfig = 1
	exitUsage         = 2
)

var signalNotify = signal.Notify

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, envconfig.EnvSource{}))
}

// run executes the CLI and returns the process exit code. env is the base
// source that --set overrides are layered on.
func run(args []string, stdout, stderr io.Writer, env envconfig.Source) int {
	kingpinApp := kingpin.New("envguard", "Resolves service configuration from the environment and fails fast on invalid settings")
	kingpinApp.UsageWriter(stdout).ErrorWriter(stderr)
	overrides := kingpinApp.Flag("set", "Override a setting, takes precedence over the environment (repeatable)").PlaceHolder("KEY=VALUE").StringMap()
	formatName := kingpinApp.Flag("format", "Report format").Default(string(report.FormatText)).Enum(report.Formats()...)

	serveCmd := kingpinApp.Command("serve", "Resolve configuration and start the HTTP server").Default()
	checkCmd := kingpinApp.Command("check", "Resolve configuration, print a report and exit")
	verbose := checkCmd.Flag("verbose", "Group settings by category").Short('v').Bool()
	schemaCmd := kingpinApp.Command("schema", "Print the settings schema as .env.example documentation")

	command, err := kingpinApp.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", kingpinApp.Name, err)
		return exitUsage
	}

	format, err := report.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", kingpinApp.Name, err)
		return exitUsage
	}
	src := config.Source(*overrides, env)

	switch command {
	case checkCmd.FullCommand():
		return check(src, stdout, stderr, format, *verbose)
	case schemaCmd.FullCommand():
		if err := report.Schema(stdout, config.Schema(), format); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", kingpinApp.Name, err)
			return exitUsage
		}
		return exitOK
	case serveCmd.FullCommand():
		return serve(src, stderr, format)
	default:
		return exitUsage
	}
}

func check(src envconfig.Source, stdout, stderr io.Writer, format report.Format, verbose bool) int {
	cfg, err := config.Load(src)
	if err != nil {
		if rerr := report.Failure(stderr, err, format); rerr != nil {
			fmt.Fprintf(stderr, "write report: %v\n", rerr)
		}
		return exitInvalidConfig
	}
	if err := report.Settings(stdout, cfg.Settings, format, verbose); err != nil {
		fmt.Fprintf(stderr, "write report: %v\n", err)
		return exitInvalidConfig
	}
	return exitOK
}

// serve never opens a socket unless configuration resolved completely.
func serve(src envconfig.Source, stderr io.Writer, format report.Format) int {
	cfg, err := config.Load(src)
	if err != nil {
		if rerr := report.Failure(stderr, err, format); rerr != nil {
			fmt.Fprintf(stderr, "write report: %v\n", rerr)
		}
		return exitInvalidConfig
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return exitInvalidConfig
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("configuration resolved", zap.Object("config", cfg.Settings))
	for _, warning := range config.Schema().Lint() {
		logger.Warn("configuration schema warning", zap.String("warning", warning))
	}

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitInvalidConfig
	}

	if err := app.Start(); err != nil {
		logger.Error("failed to start server", zap.Error(err))
		return exitInvalidConfig
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	return exitOK
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
