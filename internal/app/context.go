package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"

	"github.com/brainflux/eeg-stream/configs"
	"github.com/brainflux/eeg-stream/internal/metrics"
	"github.com/brainflux/eeg-stream/internal/session"
	"github.com/brainflux/eeg-stream/internal/store"
	"github.com/brainflux/eeg-stream/pkg/transport/natspub"
	"github.com/brainflux/eeg-stream/pkg/transport/udp"
	"github.com/brainflux/eeg-stream/pkg/transport/wshub"
)

// Context holds the application context and configuration
type Context struct {
	// CLI arguments
	ConfigFile string
	UDPAddr    string
	HTTPAddr   string
	Verbose    bool

	// Runtime context
	Logger logging.Logger
	Config *configs.Config
}

// StreamApp handles the streaming application lifecycle
type StreamApp struct {
	ctx    *Context
	config *configs.Config
	logger logging.Logger

	pipeline *metrics.Pipeline
	hub      *wshub.Hub
	nats     *natspub.Publisher
	results  *store.ResultStore
	sess     *session.Session
	receiver *udp.Receiver
}

// NewStreamApp creates a new streaming application
func NewStreamApp(ctx *Context) (*StreamApp, error) {
	// Set up logging
	logger := setupLogging(ctx)
	ctx.Logger = logger

	// Load configuration
	config, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config

	logger.Debug("Stream application initialized", logging.Fields{
		"config_file":   ctx.ConfigFile,
		"udp_addr":      config.Ingest.UDPAddr,
		"http_addr":     config.Publish.HTTPAddr,
		"sampling_rate": config.Session.SamplingRate,
		"channels":      config.Session.ChannelNames,
	})

	app := &StreamApp{
		ctx:      ctx,
		config:   config,
		logger:   logger,
		pipeline: metrics.NewPipeline(),
		hub:      wshub.New(logger),
	}

	publishers := []session.Publisher{app.hub}

	if config.Publish.NATS.Enabled {
		app.nats, err = natspub.Connect(config.Publish.NATS.URL, config.Publish.NATS.Subject, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect nats publisher: %w", err)
		}
		publishers = append(publishers, app.nats)
	}

	if config.Publish.Redis.Enabled {
		app.results = store.NewResultStore(
			config.Publish.Redis.Addr,
			config.Publish.Redis.Password,
			config.Publish.Redis.DB,
		)
		publishers = append(publishers, app.results)
	}

	app.sess, err = session.New(config.Session, logger, app.pipeline, publishers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	app.receiver, err = udp.NewReceiver(config.Ingest.UDPAddr, app.sess.Enqueue, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create udp receiver: %w", err)
	}

	return app, nil
}

// Run executes the streaming pipeline until the context is cancelled
func (app *StreamApp) Run(ctx context.Context) error {
	app.logger.Debug("Starting stream execution")

	if app.results != nil {
		checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := app.results.Check(checkCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("redis is unreachable: %w", err)
		}
	}

	server := &http.Server{
		Addr:    app.config.Publish.HTTPAddr,
		Handler: app.routes(),
	}

	errCh := make(chan error, 3)

	go func() {
		errCh <- app.sess.Run(ctx)
	}()
	go func() {
		errCh <- app.receiver.Run(ctx)
	}()
	go func() {
		app.logger.Info("HTTP server listening", logging.Fields{
			"addr": app.config.Publish.HTTPAddr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	app.hub.Close()
	if app.nats != nil {
		app.nats.Close()
	}
	if app.results != nil {
		_ = app.results.Stop()
	}

	app.logger.Info("Stream application stopped")
	return runErr
}

// routes builds the HTTP surface: the live websocket stream, the
// prometheus endpoint, and the latest-result lookup when redis
// persistence is enabled.
func (app *StreamApp) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", app.hub)
	mux.Handle("/metrics", app.pipeline.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if app.results != nil {
		mux.HandleFunc("/results/latest", func(w http.ResponseWriter, r *http.Request) {
			result, err := app.results.FetchLatest(r.Context())
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if result == nil {
				http.Error(w, "no results yet", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(result)
		})
	}

	return mux
}

// setupLogging configures logging based on context
func setupLogging(ctx *Context) logging.Logger {
	return logging.NewDefaultLogger()
}

// loadAndMergeConfig loads configuration from files and merges with CLI flags
func loadAndMergeConfig(ctx *Context) (*configs.Config, error) {
	var config *configs.Config
	var err error

	if ctx.ConfigFile != "" {
		config, err = loadConfigFromFile(ctx.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration file: %w", err)
		}
	} else {
		config, err = configs.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load base configuration: %w", err)
		}
	}

	mergedConfig := mergeConfig(config, ctx)

	if err := configs.ValidateConfig(mergedConfig); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return mergedConfig, nil
}
