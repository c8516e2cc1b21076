package app

import (
	"github.com/medwatch/claimgraph/internal/platform/envutil"
	"github.com/medwatch/claimgraph/internal/platform/neo4jdb"
)

const (
	DefaultDataDir   = "data"
	DefaultOutputDir = "outputs"
)

// Config carries the run-level settings of the pipeline binary. Store
// settings resolve separately with their own validation.
type Config struct {
	DataDir     string
	OutputDir   string
	LoadWorkers int
	Store       neo4jdb.Config
}

func LoadConfig() (Config, error) {
	store, err := neo4jdb.ResolveConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		DataDir:     envutil.Str("DATA_DIR", DefaultDataDir),
		OutputDir:   envutil.Str("OUTPUT_DIR", DefaultOutputDir),
		LoadWorkers: envutil.Int("LOAD_WORKERS", 1),
		Store:       store,
	}
	if cfg.LoadWorkers < 1 {
		cfg.LoadWorkers = 1
	}
	return cfg, nil
}
