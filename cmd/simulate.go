package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brainflux/eeg-stream/internal/session"
	"github.com/brainflux/eeg-stream/pkg/eeg/sim"
)

var (
	// Simulate command flags
	simulateTarget   string
	simulateRate     int
	simulateChannels int
	simulateBlinks   float64
	simulateDuration time.Duration
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Stream synthetic EEG data to a running pipeline",
	Long: `Generate a synthetic multi-channel EEG signal and send it to the
pipeline's UDP ingest port, one packet per second of data.

The signal carries occipital alpha, frontal theta, and periodic blink
artifacts, which makes every indicator in the pipeline produce
non-trivial output.

Examples:
  # Stream to a local pipeline indefinitely
  eeg-stream simulate --target 127.0.0.1:9000

  # Stream one minute of data with frequent blinks
  eeg-stream simulate --duration 1m --blink-interval 1.5`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&simulateTarget, "target", "127.0.0.1:9000",
		"UDP address of the pipeline's ingest port")
	simulateCmd.Flags().IntVar(&simulateRate, "rate", 250,
		"sampling rate in Hz")
	simulateCmd.Flags().IntVar(&simulateChannels, "channels", 4,
		"number of channels to generate")
	simulateCmd.Flags().Float64Var(&simulateBlinks, "blink-interval", 2.5,
		"seconds between artificial blinks (0 disables)")
	simulateCmd.Flags().DurationVar(&simulateDuration, "duration", 0,
		"how long to stream (0 streams until interrupted)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	conn, err := net.Dial("udp", simulateTarget)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", simulateTarget, err)
	}
	defer conn.Close()

	cfg := sim.DefaultConfig()
	cfg.SamplingRate = float64(simulateRate)
	cfg.Channels = simulateChannels
	cfg.BlinkInterval = simulateBlinks
	gen := sim.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if simulateDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, simulateDuration)
		defer cancel()
	}

	fmt.Fprintf(os.Stderr, "streaming %d-channel synthetic EEG at %d Hz to %s\n",
		simulateChannels, simulateRate, simulateTarget)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			packet := session.EncodePacket(gen.Window(simulateRate))
			if _, err := conn.Write(packet); err != nil {
				return fmt.Errorf("sending packet: %w", err)
			}
		}
	}
}
