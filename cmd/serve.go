package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"creditwatch/internal/config"
	"creditwatch/internal/logger"
	"creditwatch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve client credit reports over HTTP",
	Long: `Start the HTTP server exposing the client report endpoints and the
voice-search UI.

The ledger is fetched from the configured spreadsheet source on first use,
cached in memory, and refreshed when older than CACHE_TTL or when
/refresh-data is hit. A failed refresh keeps serving the last good snapshot.

Required environment variables:
  GOOGLE_SHEET_URL - Google Sheets URL of the ledger (with
  GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS for access), OR
  GOOGLE_DRIVE_FILE_ID - Drive file ID of a CSV export (optionally with
  GOOGLE_DRIVE_API_KEY)`,
	Example: `  # Serve on the default address
  creditwatch serve

  # Serve on a specific port
  creditwatch serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.ListenAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Warm the cache so the first request does not pay the fetch latency.
	// A failure here is not fatal; the store retries on demand.
	if _, err := store.Snapshot(ctx, false); err != nil {
		log.Warn().Err(err).Msg("Initial ledger fetch failed, will retry on demand")
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(store, reportOptions(cfg)).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}
