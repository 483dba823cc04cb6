package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semdelta/config"
	"github.com/c360studio/semdelta/graph"
	"github.com/c360studio/semdelta/model"
	"github.com/c360studio/semdelta/resource"
	"github.com/c360studio/semdelta/storage"
	"github.com/c360studio/semdelta/updater"
)

// App wires configuration, NATS, content storage and the updater together.
type App struct {
	cfg    *config.Config
	caps   config.Capabilities
	logger *slog.Logger

	// NATS
	natsConn *nats.Conn
	js       jetstream.JetStream

	// Storage
	store storage.ContentStore

	schemas *model.Registry
	metrics *prometheus.Registry
	updater *updater.Updater
	sink    updater.Sink
	started bool
}

// NewApp creates a new application instance. Capabilities are resolved
// here, once.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:     cfg,
		caps:    config.ResolveCapabilities(cfg),
		logger:  logger,
		metrics: prometheus.NewRegistry(),
	}
}

// Capabilities returns the resolved capabilities.
func (a *App) Capabilities() config.Capabilities {
	return a.caps
}

// Namespace returns the repository namespace.
func (a *App) Namespace() resource.Namespace {
	return resource.Namespace(a.cfg.Repository.BaseURI)
}

// LoadSchemas reads the class schemas from path, or from the configured
// schema file when path is empty.
func (a *App) LoadSchemas(path string) (*model.Registry, error) {
	if path == "" {
		path = a.cfg.Repository.Schemas
	}
	reg, err := model.LoadSchemas(path)
	if err != nil {
		return nil, err
	}
	a.schemas = reg
	a.logger.Debug("Loaded schemas", "path", path, "classes", reg.Classes())
	return reg, nil
}

// Start connects to NATS when publishing is available and opens the
// content store.
func (a *App) Start(ctx context.Context) error {
	if a.caps.Publish.Enabled {
		if err := a.connectNATS(); err != nil {
			return err
		}
		a.sink = graph.NewPublisher(a.js, a.cfg.Update.Subject)
	} else {
		a.logger.Info("Publishing disabled", "reason", a.caps.Publish.Reason)
	}

	switch {
	case a.caps.DurableContent:
		kv, err := storage.NewKVStore(ctx, a.js, a.cfg.Storage.Bucket)
		if err != nil {
			return fmt.Errorf("initialize storage: %w", err)
		}
		a.store = kv
	case a.caps.ContentStore.Enabled:
		a.store = storage.NewMemoryStore()
	default:
		a.logger.Info("Content store disabled", "reason", a.caps.ContentStore.Reason)
	}

	opts := []updater.Option{
		updater.WithLogger(a.logger),
		updater.WithMetrics(updater.NewMetrics(a.metrics)),
	}
	if a.store != nil {
		opts = append(opts, updater.WithStore(a.store))
	}
	a.updater = updater.New(a.sink, opts...)
	a.started = true
	return nil
}

func (a *App) connectNATS() error {
	a.logger.Debug("Connecting to NATS", "url", a.cfg.NATS.URL)
	opts := []nats.Option{nats.Name(appName)}
	if a.cfg.NATS.Timeout > 0 {
		opts = append(opts, nats.Timeout(a.cfg.NATS.Timeout))
	}
	conn, err := nats.Connect(a.cfg.NATS.URL, opts...)
	if err != nil {
		return fmt.Errorf("connect to NATS at %s: %w", a.cfg.NATS.URL, err)
	}
	a.natsConn = conn

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("create JetStream context: %w", err)
	}
	a.js = js
	return nil
}

// Store returns the content store, or nil when none is available.
func (a *App) Store() storage.ContentStore {
	return a.store
}

// Updater returns the updater. Start must have been called.
func (a *App) Updater() *updater.Updater {
	if !a.started {
		return updater.New(nil, updater.WithLogger(a.logger))
	}
	return a.updater
}

// Shutdown drains the NATS connection and logs collected metrics.
func (a *App) Shutdown() {
	if families, err := a.metrics.Gather(); err == nil {
		for _, mf := range families {
			a.logger.Debug("Metric", "name", mf.GetName(), "series", len(mf.GetMetric()))
		}
	}

	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.logger.Warn("Failed to drain NATS connection", "error", err)
		}
		a.natsConn.Close()
		a.natsConn = nil
	}
}
