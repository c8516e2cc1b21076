package graph

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"

	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/platform/neo4jdb"
	"github.com/medwatch/claimgraph/internal/types"
)

const (
	DefaultBatchSize    = 1000
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = time.Second
)

type LoaderConfig struct {
	// BatchSize caps the records carried by one UNWIND transaction.
	BatchSize int
	// Workers > 1 submits the batches of a kind concurrently. Batches
	// within a kind are independent, so ordering only holds across kinds.
	Workers int
	// MaxRetries bounds the extra attempts granted to a transient failure.
	MaxRetries int
	// RetryBackoff is the first retry delay; it doubles per attempt with
	// jitter applied.
	RetryBackoff time.Duration
}

func (c LoaderConfig) withDefaults() LoaderConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}
	return c
}

// LoadResult summarizes the batched load of one kind. FailedBatches holds
// the 1-based indexes of batches that exhausted their retries; their
// records are absent from Committed but never block later batches.
type LoadResult struct {
	Kind          string
	Total         int
	Batches       int
	Committed     int
	FailedBatches []int
}

// Loader writes node and edge records in batched, idempotent transactions.
// All node kinds load before any edge kind so that every relationship
// finds its endpoints.
type Loader struct {
	client *neo4jdb.Client
	cfg    LoaderConfig
	log    *logger.Logger

	// submit commits one batch. Tests replace it to exercise partitioning
	// and retry classification without a store.
	submit func(ctx context.Context, cypher string, records []map[string]any) error
}

func NewLoader(client *neo4jdb.Client, cfg LoaderConfig, log *logger.Logger) *Loader {
	l := &Loader{
		client: client,
		cfg:    cfg.withDefaults(),
		log:    log.With("component", "BatchLoader"),
	}
	l.submit = l.submitBatch
	return l
}

// LoadNodes writes every node kind in the fixed load order and returns one
// result per kind.
func (l *Loader) LoadNodes(ctx context.Context, set *types.NodeSet) ([]LoadResult, error) {
	results := make([]LoadResult, 0, len(types.AllNodeKinds))
	for _, kind := range types.AllNodeKinds {
		stmt := nodeStatements[kind]
		res, err := l.loadRecords(ctx, kind.Label(), stmt.cypher, stmt.records(set))
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// LoadEdges writes every edge kind. Callers must have loaded nodes first;
// an edge whose endpoints are missing matches nothing and writes nothing.
func (l *Loader) LoadEdges(ctx context.Context, set *types.EdgeSet) ([]LoadResult, error) {
	results := make([]LoadResult, 0, len(types.AllEdgeKinds))
	for _, kind := range types.AllEdgeKinds {
		stmt := edgeStatements[kind]
		res, err := l.loadRecords(ctx, kind.RelType(), stmt.cypher, stmt.records(set))
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (l *Loader) loadRecords(ctx context.Context, kind, cypher string, records []map[string]any) (LoadResult, error) {
	result := LoadResult{Kind: kind, Total: len(records)}
	log := l.log.With("kind", kind)
	if len(records) == 0 {
		log.Info("nothing to load")
		return result, nil
	}

	batches := partition(records, l.cfg.BatchSize)
	result.Batches = len(batches)
	log.Info("loading",
		"records", len(records),
		"batches", len(batches),
		"batch_size", l.cfg.BatchSize,
		"workers", l.cfg.Workers,
	)

	if l.cfg.Workers > 1 {
		if err := l.loadConcurrent(ctx, log, cypher, batches, &result); err != nil {
			return result, err
		}
	} else {
		for i, batch := range batches {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := l.submitWithRetry(ctx, log, i+1, cypher, batch); err != nil {
				if ctx.Err() != nil {
					return result, ctx.Err()
				}
				result.FailedBatches = append(result.FailedBatches, i+1)
				continue
			}
			result.Committed += len(batch)
		}
	}

	log.Info("load finished",
		"committed", result.Committed,
		"failed_batches", len(result.FailedBatches),
	)
	return result, nil
}

func (l *Loader) loadConcurrent(ctx context.Context, log *logger.Logger, cypher string, batches [][]map[string]any, result *LoadResult) error {
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Workers)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			if err := l.submitWithRetry(gctx, log, i+1, cypher, batch); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				mu.Lock()
				result.FailedBatches = append(result.FailedBatches, i+1)
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.Committed += len(batch)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	sort.Ints(result.FailedBatches)
	return nil
}

// submitWithRetry commits one batch, retrying transient failures with
// doubling jittered backoff. Permanent failures (constraint violations,
// malformed statements) return on the first attempt.
func (l *Loader) submitWithRetry(ctx context.Context, log *logger.Logger, batchIndex int, cypher string, records []map[string]any) error {
	backoff := l.cfg.RetryBackoff
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := l.submit(ctx, cypher, records)
		if err == nil {
			if attempt > 0 {
				log.Info("batch committed after retry", "batch", batchIndex, "attempts", attempt+1)
			}
			return nil
		}
		if !neo4jdb.IsTransient(err) || attempt == l.cfg.MaxRetries {
			log.Error("batch failed",
				"batch", batchIndex,
				"records", len(records),
				"attempts", attempt+1,
				"transient", neo4jdb.IsTransient(err),
				"error", err,
			)
			return err
		}
		sleep := neo4jdb.JitterSleep(backoff)
		log.Warn("batch retrying",
			"batch", batchIndex,
			"attempt", attempt+1,
			"max_retries", l.cfg.MaxRetries,
			"backoff", sleep.String(),
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		backoff *= 2
	}
}

func (l *Loader) submitBatch(ctx context.Context, cypher string, records []map[string]any) error {
	session := l.client.WriteSession(ctx)
	defer session.Close(ctx)

	qctx, cancel := context.WithTimeout(ctx, l.client.QueryTimeout)
	defer cancel()

	_, err := session.ExecuteWrite(qctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(qctx, cypher, map[string]any{"records": records})
		if err != nil {
			return nil, err
		}
		return res.Consume(qctx)
	})
	return err
}

func partition(records []map[string]any, size int) [][]map[string]any {
	if size <= 0 {
		size = DefaultBatchSize
	}
	batches := make([][]map[string]any, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}
