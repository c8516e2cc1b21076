// Package app is the composition root of the pipeline binaries: logger,
// resolved configuration, and a lazily dialed graph store client.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/medwatch/claimgraph/internal/dataset"
	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/platform/neo4jdb"
)

type App struct {
	Log   *logger.Logger
	Cfg   Config
	RunID string

	mu    sync.Mutex
	graph *neo4jdb.Client
}

// Overrides carries CLI flag values that take precedence over the
// environment. Zero values leave the resolved config untouched.
type Overrides struct {
	DataDir   string
	OutputDir string
	BatchSize int
	Workers   int
}

func New(ov Overrides) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Sync()
		return nil, err
	}
	if ov.DataDir != "" {
		cfg.DataDir = ov.DataDir
	}
	if ov.OutputDir != "" {
		cfg.OutputDir = ov.OutputDir
	}
	if ov.BatchSize > 0 {
		cfg.Store.BatchSize = ov.BatchSize
	}
	if ov.Workers > 0 {
		cfg.LoadWorkers = ov.Workers
	}
	if err := neo4jdb.ValidateConfig(cfg.Store); err != nil {
		log.Sync()
		return nil, err
	}

	runID := uuid.NewString()
	return &App{
		Log:   log.With("run_id", runID),
		Cfg:   cfg,
		RunID: runID,
	}, nil
}

func (a *App) Paths() dataset.Paths {
	return dataset.Paths{DataDir: a.Cfg.DataDir, OutputDir: a.Cfg.OutputDir}
}

// Graph dials the store on first use, so stage subsets that never touch
// the store run without a reachable server.
func (a *App) Graph(ctx context.Context) (*neo4jdb.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.graph != nil {
		return a.graph, nil
	}
	client, err := neo4jdb.New(ctx, a.Cfg.Store, a.Log)
	if err != nil {
		return nil, err
	}
	a.graph = client
	return client, nil
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.graph != nil {
		if err := a.graph.Close(ctx); err != nil {
			a.Log.Warn("closing store client", "error", err)
		}
		a.graph = nil
	}
	a.Log.Sync()
}
