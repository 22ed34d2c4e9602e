package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/groblegark/gatelog/internal/config"
	"github.com/groblegark/gatelog/internal/events"
	"github.com/groblegark/gatelog/internal/server"
	"github.com/groblegark/gatelog/internal/snapshot"
	"github.com/groblegark/gatelog/internal/store/postgres"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the visit log server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't create an HTTP client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (GATELOG_NATS_URL not set)")
		}

		// Create server components.
		visitServer := server.NewVisitServer(store, publisher, cfg.RequireRegistration)

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: visitServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start snapshot scheduler if a destination is configured.
		var scheduler *snapshot.Scheduler
		if cfg.SnapshotInterval > 0 {
			var dests []snapshot.Destination

			if cfg.SnapshotS3Bucket != "" {
				s3Dest, err := snapshot.NewS3Destination(
					context.Background(),
					cfg.SnapshotS3Bucket,
					cfg.SnapshotS3Key,
					cfg.SnapshotS3Region,
					cfg.SnapshotS3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 snapshot destination", "err", err)
				} else {
					dests = append(dests, s3Dest)
					logger.Info("snapshot S3 destination enabled", "bucket", cfg.SnapshotS3Bucket, "key", cfg.SnapshotS3Key)
				}
			}

			if len(dests) > 0 {
				scheduler = snapshot.NewScheduler(store, dests, cfg.SnapshotInterval, logger)
				scheduler.Start()
				logger.Info("snapshot scheduler started", "interval", cfg.SnapshotInterval)
			}
		}

		// Log startup info.
		logger.Info("gatelog server started",
			"http_addr", cfg.HTTPAddr,
			"require_registration", cfg.RequireRegistration,
		)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("snapshot scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
