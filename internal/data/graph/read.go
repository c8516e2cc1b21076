package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// readSingle runs a statement expected to yield exactly one record, such
// as an aggregate RETURN.
func readSingle(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) (*neo4j.Record, error) {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	rec, err := res.Single(ctx)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// readCount runs a statement returning a single `count` column.
func readCount(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) (int64, error) {
	rec, err := readSingle(ctx, tx, cypher, params)
	if err != nil {
		return 0, err
	}
	v, ok := rec.Get("count")
	if !ok {
		return 0, fmt.Errorf("statement returned no count column")
	}
	return asInt(v), nil
}

// asInt coerces an aggregate cell to int64. Aggregates over an empty match
// come back null, which counts as zero.
func asInt(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	default:
		return 0
	}
}

func recInt(rec *neo4j.Record, key string) int64 {
	v, ok := rec.Get(key)
	if !ok {
		return 0
	}
	return asInt(v)
}

func recFloat(rec *neo4j.Record, key string) float64 {
	v, ok := rec.Get(key)
	if !ok {
		return 0
	}
	return asFloat(v)
}
