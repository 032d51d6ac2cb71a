package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apihttp "matchday-backend/internal/api/http"
	"matchday-backend/internal/config"
	"matchday-backend/internal/logger"
	"matchday-backend/internal/news"
	"matchday-backend/internal/reconciler"
	"matchday-backend/internal/repository/firestoredb"
	"matchday-backend/internal/trigger"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Matchday Server...", "log_level", cfg.Log.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Firestore
	logger.Info("Connecting to Firestore...", "project_id", cfg.Firestore.ProjectID)
	client, err := firestoredb.Connect(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		logger.Error("Failed to connect to Firestore", "error", err)
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	store := firestoredb.NewStore(client)
	defer store.Close()
	logger.Info("Firestore connection established")

	// Start the accept-cascade listener
	listener := trigger.NewListener(client, reconciler.New(store))
	go func() {
		for {
			if err := listener.Run(ctx); err != nil {
				logger.Error("Join request listener failed, restarting", "error", err)
			}
			if ctx.Err() != nil {
				return
			}
			time.Sleep(5 * time.Second)
		}
	}()

	// Wire the news feed and HTTP API
	fetcher := news.NewFetcher(time.Duration(cfg.News.RequestTimeoutSeconds) * time.Second)
	cache := news.NewCache(time.Duration(cfg.News.CacheTTLSeconds) * time.Second)
	feed := news.NewFeed(fetcher.Sources(), cache)

	srv := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: apihttp.NewRouter(apihttp.NewNewsHandler(feed)),
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	cancel()
	logger.Info("Server stopped. Goodbye!")
}
