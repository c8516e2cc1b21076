package analytics

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/platform/neo4jdb"
)

// Result is the ordered output of one catalog query: one row per record,
// cells aligned with the query's declared columns. A declared column the
// statement never returned comes back nil.
type Result struct {
	Query   Query
	Columns []string
	Rows    [][]any
}

func (r *Result) RowCount() int {
	return len(r.Rows)
}

// Runner executes catalog queries read-only against the loaded graph.
type Runner struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewRunner(client *neo4jdb.Client, log *logger.Logger) *Runner {
	return &Runner{
		client: client,
		log:    log.With("component", "QueryRunner"),
	}
}

// Execute runs one catalog query and materializes its rows in result
// order. A failure belongs to this query alone; callers log it and move
// on to the next entry.
func (r *Runner) Execute(ctx context.Context, q Query) (*Result, error) {
	session := r.client.ReadSession(ctx)
	defer session.Close(ctx)

	qctx, cancel := context.WithTimeout(ctx, r.client.QueryTimeout)
	defer cancel()

	out, err := session.ExecuteRead(qctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(qctx, q.Cypher, nil)
		if err != nil {
			return nil, err
		}
		var rows [][]any
		for res.Next(qctx) {
			rec := res.Record()
			row := make([]any, len(q.Columns))
			for i, col := range q.Columns {
				v, ok := rec.Get(col)
				if !ok {
					continue
				}
				row[i] = v
			}
			rows = append(rows, row)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return nil, neo4jdb.OpErr("query "+q.Slug, neo4jdb.OperationErrorRead, "", err)
	}

	rows := out.([][]any)
	r.log.Info("query executed", "slug", q.Slug, "rows", len(rows))
	return &Result{Query: q, Columns: q.Columns, Rows: rows}, nil
}
