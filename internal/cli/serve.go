package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recollect-app/recollect/internal/cache"
	"github.com/recollect-app/recollect/internal/catalog"
	"github.com/recollect-app/recollect/internal/config"
	"github.com/recollect-app/recollect/internal/engine"
	"github.com/recollect-app/recollect/internal/history"
	"github.com/recollect-app/recollect/internal/server"
	"github.com/recollect-app/recollect/internal/store"
	"github.com/recollect-app/recollect/internal/syncer"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Catalog.URL == "" {
		return fmt.Errorf("RECOLLECT_CATALOG_URL is required")
	}
	if cfg.Catalog.UserID == "" {
		return fmt.Errorf("RECOLLECT_USER_ID is required")
	}

	// Resolve database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	source := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.APIKey)
	cacheStore := cache.New(db)
	coord := syncer.New(cacheStore, source, cfg.Catalog.UserID)
	tracker := history.New(cacheStore, coord)
	eng := engine.New(cacheStore, coord, tracker)
	defer eng.Stop()

	srv := server.New(db, eng, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "recollect serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  catalog: %s\n", cfg.Catalog.URL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
