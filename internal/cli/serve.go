package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"headroom/internal/config"
	"headroom/internal/server"
	"headroom/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only inspection API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, ws, err := config.Resolve()
	if err != nil {
		return err
	}

	// The server still works without telemetry; /api/turns degrades.
	db, err := store.Open(config.DBPath(ws))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: telemetry db unavailable (%v)\n", err)
		db = nil
	} else {
		defer db.Close()
	}

	srv := server.New(cfg, ws, db, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "headroom serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  workspace: %s\n", ws)
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
