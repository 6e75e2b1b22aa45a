package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brainflux/eeg-stream/internal/app"
)

var (
	// Serve command flags
	serveUDPAddr  string
	serveHTTPAddr string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the EEG streaming pipeline",
	Long: `Run the full streaming pipeline: ingest raw samples over UDP,
analyze the rolling buffer once per interval, and publish cognitive
state results to every configured sink.

Examples:
  # Run with defaults (UDP :9000, HTTP :8080)
  eeg-stream serve

  # Custom addresses
  eeg-stream serve --udp :9100 --http :8081

  # With a configuration file
  eeg-stream serve --config ./configs/eeg-stream.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveUDPAddr, "udp", "",
		"UDP listen address for raw sample packets")
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "",
		"HTTP listen address for websocket and metrics endpoints")
}

func runServe(cmd *cobra.Command, args []string) error {
	appCtx := &app.Context{
		ConfigFile: configFile,
		UDPAddr:    serveUDPAddr,
		HTTPAddr:   serveHTTPAddr,
		Verbose:    verbose,
	}

	streamApp, err := app.NewStreamApp(appCtx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return streamApp.Run(ctx)
}
