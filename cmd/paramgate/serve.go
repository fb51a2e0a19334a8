package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/artpar/paramgate/adapters/httpapi"
	"github.com/artpar/paramgate/adapters/metrics"
	"github.com/artpar/paramgate/config"
	"github.com/artpar/paramgate/core/registry"
	"github.com/artpar/paramgate/core/schema"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the validation service",
	Long: `Loads the configuration, parses and compiles every schema in the
schema directory, freezes the registry, and serves the HTTP API.
A schema definition error is fatal: the server refuses to start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging.Level, cfg.Logging.Format)

	schemas, err := schema.ParseDir(cfg.Schemas.Dir)
	if err != nil {
		return fmt.Errorf("load schemas: %w", err)
	}
	if len(schemas) == 0 {
		return fmt.Errorf("no schemas found in %s", cfg.Schemas.Dir)
	}

	builder := registry.NewBuilder(nil)
	if err := builder.RegisterAll(schemas); err != nil {
		return fmt.Errorf("register schemas: %w", err)
	}
	reg := builder.Freeze()

	logger.Info().
		Int("schemas", reg.Len()).
		Str("dir", cfg.Schemas.Dir).
		Msg("schema registry frozen")

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New()
	}

	handler := httpapi.New(reg, logger, collector)
	router := handler.Routes()
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
