package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IgorGrieder/encurtador-console/internal/config"
	"github.com/IgorGrieder/encurtador-console/internal/console"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/clipboard"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/logger"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/reporting"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/telemetry"
	"github.com/IgorGrieder/encurtador-console/internal/linksapi"
	httpTransport "github.com/IgorGrieder/encurtador-console/internal/transport/http"
	"github.com/IgorGrieder/encurtador-console/internal/transport/terminal"
	"github.com/IgorGrieder/encurtador-console/pkg/httpclient"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Options{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		File:  cfg.App.LogFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting console",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("api", cfg.API.BaseURL),
	)

	if err := reporting.Init(cfg.Sentry.DSN, cfg.App.Env, cfg.App.Version); err != nil {
		logger.Warn("Failed to initialize error reporting, continuing without it", zap.Error(err))
	}
	defer reporting.Flush(2 * time.Second)

	var shutdownTracer func(context.Context) error
	if cfg.OTel.Enabled {
		shutdownTracer, err = telemetry.InitTracer(cfg.OTel.Endpoint, cfg.App.Name, cfg.App.Version)
		if err != nil {
			logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			logger.Info("OpenTelemetry tracer initialized", zap.String("endpoint", cfg.OTel.Endpoint))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hc := httpclient.NewClient(cfg.API.Timeout, cfg.API.BreakerFailures, cfg.API.BreakerCooldown)
	api := linksapi.NewClient(hc, cfg.API.BaseURL, cfg.API.APIKey)

	if !clipboard.Available() {
		logger.Warn("No system clipboard found, copy will fail")
	}

	prompter := terminal.NewPrompter(os.Stdin, os.Stdout)
	session := console.NewSession(api, clipboard.NewSystem(), prompter, console.Options{
		ShortLinkOrigin:   cfg.Console.ShortLinkOrigin,
		CopyFeedbackDelay: cfg.Console.CopyFeedbackDelay,
	})
	defer session.Close()

	// A failed first load is shown in the console; the operator can refresh.
	_ = session.Mount(ctx)

	var server *http.Server
	if cfg.Admin.Enabled {
		server = &http.Server{
			Addr:         net.JoinHostPort(cfg.Admin.Host, cfg.Admin.Port),
			Handler:      httpTransport.NewRouter(cfg, session),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			logger.Info("Admin server starting", zap.String("address", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Admin server error", zap.Error(err))
				reporting.CaptureError(err, map[string]string{"component": "admin"})
			}
		}()
	}

	repl := terminal.NewREPL(session, prompter, os.Stdout)
	done := make(chan error, 1)
	go func() { done <- repl.Run(ctx) }()

	// A signal must not wait for the blocked stdin read to return.
	select {
	case err := <-done:
		if err != nil {
			logger.Error("Console input error", zap.Error(err))
		}
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
	}

	logger.Info("Shutting down console...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Admin server shutdown error", zap.Error(err))
		}
	}
	if shutdownTracer != nil {
		_ = shutdownTracer(shutdownCtx)
	}

	logger.Info("Console stopped")
}
