package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/patterncat/internal/api"
	"github.com/dgallion1/patterncat/internal/config"
	"github.com/dgallion1/patterncat/internal/parser"
	"github.com/dgallion1/patterncat/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the catalog before serving; a broken file at startup is fatal.
	st := store.New(cfg.CatalogPath, parser.Options{ChapterLevel: cfg.ChapterLevel}, log, cfg.StatsWindow)
	if _, err := st.Reload(); err != nil {
		log.Error("initial catalog load failed", "error", err)
		os.Exit(1)
	}
	if cfg.Watch {
		if err := st.Watch(ctx, cfg.WatchDebounce); err != nil {
			log.Warn("hot reload disabled", "error", err)
		}
	}

	srv := api.NewServer(st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()
		st.Wait()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting patterncat", "port", cfg.Port, "catalog", st.Path())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
