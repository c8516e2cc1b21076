package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/medwatch/claimgraph/internal/analytics"
	"github.com/medwatch/claimgraph/internal/app"
	"github.com/medwatch/claimgraph/internal/cleanse"
	"github.com/medwatch/claimgraph/internal/data/graph"
	"github.com/medwatch/claimgraph/internal/dataset"
	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/report"
	"github.com/medwatch/claimgraph/internal/transform"
	"github.com/medwatch/claimgraph/internal/types"
)

type Runner struct {
	app *app.App
}

func NewRunner(a *app.App) *Runner {
	return &Runner{app: a}
}

// Run executes the selected stages in order. The first stage error aborts
// the run; failures the stages absorb themselves (skipped inputs, failed
// batches, failed queries) do not surface here.
func (r *Runner) Run(ctx context.Context, stages []Stage) error {
	if err := r.app.Paths().EnsureDirs(); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		log := r.app.Log.With("stage", string(stage))
		start := time.Now()
		log.Info("stage starting")

		var err error
		switch stage {
		case StageCleanse:
			err = r.cleanse(ctx, log)
		case StageTransform:
			err = r.transform(ctx, log)
		case StageSchema:
			err = r.schema(ctx, log)
		case StageLoad:
			err = r.load(ctx, log)
		case StageValidate:
			err = r.validate(ctx, log)
		case StageQuery:
			err = r.query(ctx, log)
		case StageReport:
			err = r.report(ctx, log)
		}
		if err != nil {
			return fmt.Errorf("stage %s: %w", stage, err)
		}
		log.Info("stage finished", "elapsed", time.Since(start).String())
	}
	return nil
}

// cleanse normalizes whichever raw inputs exist, writes the cleaned
// per-kind files, and renders the data quality report. A missing raw file
// skips its kind.
func (r *Runner) cleanse(ctx context.Context, log *logger.Logger) error {
	paths := r.app.Paths()
	norm := cleanse.NewNormalizer(log, time.Now())

	beneficiary, err := rawTable(log, paths.Raw(dataset.RawBeneficiaryFile))
	if err != nil {
		return err
	}
	inpatient, err := rawTable(log, paths.Raw(dataset.RawInpatientFile))
	if err != nil {
		return err
	}
	outpatient, err := rawTable(log, paths.Raw(dataset.RawOutpatientFile))
	if err != nil {
		return err
	}
	provider, err := rawTable(log, paths.Raw(dataset.RawProviderFile))
	if err != nil {
		return err
	}

	var qualities []cleanse.KindQuality
	if beneficiary != nil {
		rows, quality := norm.Beneficiaries(beneficiary)
		if err := dataset.WriteBeneficiaryRows(paths.Processed(dataset.CleanedBeneficiaryFile), rows); err != nil {
			return fmt.Errorf("write cleaned beneficiaries: %w", err)
		}
		qualities = append(qualities, quality)
	}
	if inpatient != nil {
		rows, quality := norm.Claims(inpatient, "inpatient")
		if err := dataset.WriteClaimRows(paths.Processed(dataset.CleanedInpatientFile), rows); err != nil {
			return fmt.Errorf("write cleaned inpatient claims: %w", err)
		}
		qualities = append(qualities, quality)
	}
	if outpatient != nil {
		rows, quality := norm.Claims(outpatient, "outpatient")
		if err := dataset.WriteClaimRows(paths.Processed(dataset.CleanedOutpatientFile), rows); err != nil {
			return fmt.Errorf("write cleaned outpatient claims: %w", err)
		}
		qualities = append(qualities, quality)
	}
	if provider != nil {
		rows, quality := norm.Providers(provider)
		if err := dataset.WriteProviderRows(paths.Processed(dataset.CleanedProviderFile), rows); err != nil {
			return fmt.Errorf("write cleaned providers: %w", err)
		}
		qualities = append(qualities, quality)
	}

	path := paths.Stats(dataset.QualityReportFile)
	text := report.RenderQualityReport(time.Now(), qualities)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write quality report: %w", err)
	}
	log.Info("data quality report written", "path", path, "kinds", len(qualities))
	return nil
}

// transform projects the cleaned rows into node and edge sets. Extraction
// and derivation run concurrently; each side materializes its own files.
func (r *Runner) transform(ctx context.Context, log *logger.Logger) error {
	paths := r.app.Paths()

	providerRows, err := dataset.ReadProviderRows(paths.Processed(dataset.CleanedProviderFile))
	if err := skipMissing(log, dataset.CleanedProviderFile, err); err != nil {
		return err
	}
	beneficiaryRows, err := dataset.ReadBeneficiaryRows(paths.Processed(dataset.CleanedBeneficiaryFile))
	if err := skipMissing(log, dataset.CleanedBeneficiaryFile, err); err != nil {
		return err
	}
	inpatientRows, err := dataset.ReadClaimRows(paths.Processed(dataset.CleanedInpatientFile))
	if err := skipMissing(log, dataset.CleanedInpatientFile, err); err != nil {
		return err
	}
	outpatientRows, err := dataset.ReadClaimRows(paths.Processed(dataset.CleanedOutpatientFile))
	if err := skipMissing(log, dataset.CleanedOutpatientFile, err); err != nil {
		return err
	}

	claims := transform.MergeClaims(inpatientRows, outpatientRows)

	var (
		nodes   *types.NodeSet
		edges   *types.EdgeSet
		summary transform.ExtractSummary
		g       errgroup.Group
	)
	g.Go(func() error {
		nodes, summary = transform.ExtractNodes(providerRows, beneficiaryRows, claims, log)
		return dataset.WriteNodeSet(paths, nodes)
	})
	g.Go(func() error {
		edges = transform.DeriveEdges(claims, log)
		return dataset.WriteEdgeSet(paths, edges)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("materialize graph files: %w", err)
	}

	log.Info("transform complete",
		"providers", nodes.Count(types.NodeProvider),
		"beneficiaries", nodes.Count(types.NodeBeneficiary),
		"claims", nodes.Count(types.NodeClaim),
		"physicians", nodes.Count(types.NodePhysician),
		"medicalCodes", nodes.Count(types.NodeMedicalCode),
		"edges", edges.Total(),
		"fraudProviders", summary.FraudProviders,
		"codeTypeConflicts", summary.CodeTypeConflicts,
	)
	return nil
}

func (r *Runner) schema(ctx context.Context, log *logger.Logger) error {
	client, err := r.app.Graph(ctx)
	if err != nil {
		return err
	}
	manager := graph.NewManager(client, r.app.Log)

	database, err := manager.EnsureDatabase(ctx)
	if err != nil {
		return err
	}
	if err := manager.EnsureConstraints(ctx); err != nil {
		return err
	}
	indexes, constraints, err := manager.VerifySchema(ctx)
	if err != nil {
		return err
	}
	log.Info("schema ready", "database", database, "indexes", indexes, "constraints", constraints)
	return nil
}

// load bulk-writes the materialized node and edge files. Node kinds load
// strictly before edge kinds; failed batches are reported, not fatal.
func (r *Runner) load(ctx context.Context, log *logger.Logger) error {
	paths := r.app.Paths()

	nodes, missingNodes, err := dataset.ReadNodeSet(paths)
	if err != nil {
		return fmt.Errorf("read node files: %w", err)
	}
	edges, missingEdges, err := dataset.ReadEdgeSet(paths)
	if err != nil {
		return fmt.Errorf("read edge files: %w", err)
	}
	for _, name := range append(missingNodes, missingEdges...) {
		log.Warn("graph file missing, kind skipped", "file", name)
	}

	client, err := r.app.Graph(ctx)
	if err != nil {
		return err
	}
	loader := graph.NewLoader(client, graph.LoaderConfig{
		BatchSize: r.app.Cfg.Store.BatchSize,
		Workers:   r.app.Cfg.LoadWorkers,
	}, r.app.Log)

	nodeResults, err := loader.LoadNodes(ctx, nodes)
	if err != nil {
		return err
	}
	edgeResults, err := loader.LoadEdges(ctx, edges)
	if err != nil {
		return err
	}

	var committed, failed int
	for _, res := range append(nodeResults, edgeResults...) {
		committed += res.Committed
		failed += len(res.FailedBatches)
	}
	log.Info("load complete",
		"nodes", nodes.Total(),
		"edges", edges.Total(),
		"committed", committed,
		"failedBatches", failed,
	)
	return nil
}

func (r *Runner) validate(ctx context.Context, log *logger.Logger) error {
	client, err := r.app.Graph(ctx)
	if err != nil {
		return err
	}
	rep, err := graph.NewValidator(client, r.app.Log).Run(ctx)
	if err != nil {
		return err
	}
	log.Info("validation complete", "healthy", rep.Healthy(), "anomalies", rep.Anomalies())
	return nil
}

// query runs the full analytic catalog and writes one result CSV per
// entry. A failing query is logged and skipped; the stage only aborts on
// store connectivity loss or cancellation.
func (r *Runner) query(ctx context.Context, log *logger.Logger) error {
	catalog, err := analytics.LoadCatalog()
	if err != nil {
		return err
	}
	client, err := r.app.Graph(ctx)
	if err != nil {
		return err
	}
	runner := analytics.NewRunner(client, r.app.Log)

	paths := r.app.Paths()
	failed := 0
	for _, q := range catalog.All() {
		res, err := runner.Execute(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error("query failed", "slug", q.Slug, "error", err)
			failed++
			continue
		}
		path := paths.Results(q.Slug + ".csv")
		if err := report.WriteResultCSV(path, res.Columns, res.Rows); err != nil {
			return err
		}
	}
	log.Info("queries complete", "total", catalog.Len(), "failed", failed)
	return nil
}

func (r *Runner) report(ctx context.Context, log *logger.Logger) error {
	client, err := r.app.Graph(ctx)
	if err != nil {
		return err
	}
	stats, err := graph.CollectStatistics(ctx, client, r.app.Log)
	if err != nil {
		return err
	}

	paths := r.app.Paths()
	path := paths.Stats(dataset.StatisticsReportFile)
	text := report.RenderStatisticsReport(time.Now(), stats)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write statistics report: %w", err)
	}
	log.Info("statistics report written", "path", path)
	return nil
}

// rawTable loads one raw input, or nil when the file does not exist.
func rawTable(log *logger.Logger, path string) (*dataset.Table, error) {
	table, err := dataset.ReadTable(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("raw input missing, kind skipped", "file", filepath.Base(path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	log.Info("raw input loaded", "file", filepath.Base(path), "records", len(table.Rows))
	return table, nil
}

// skipMissing downgrades a missing intermediate file to a warning; the
// kind contributes zero rows.
func skipMissing(log *logger.Logger, file string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		log.Warn("cleaned input missing, kind skipped", "file", file)
		return nil
	default:
		return fmt.Errorf("read %s: %w", file, err)
	}
}
