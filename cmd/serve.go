package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/naka-gawa/gitgrade/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analysis API over HTTP",
	Long: `Starts an HTTP server exposing GET /api/analyze?url=<repository URL>,
which returns the analysis report as JSON. CORS is open to any origin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The server always logs; --verbose adds per-fetch gateway logs.
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger := log.New(os.Stderr, "", log.LstdFlags)
		analyzer, cfg, err := newAnalyzer(cmd, newLogger(verbose))
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}
		handler := server.NewHandler(analyzer, cfg.Server.RequestTimeout, logger)
		srv := server.New(addr, handler.Routes(), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Println("Shutting down API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return <-errCh
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
