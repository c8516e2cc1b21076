package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/medwatch/claimgraph/internal/app"
	"github.com/medwatch/claimgraph/internal/pipeline"
)

func main() {
	var (
		stagesFlag = flag.String("stages", "all", "comma-separated stages to run (cleanse, transform, schema, load, validate, query, report)")
		dataDir    = flag.String("data-dir", "", "data directory (overrides DATA_DIR)")
		outputDir  = flag.String("output-dir", "", "output directory (overrides OUTPUT_DIR)")
		batchSize  = flag.Int("batch-size", 0, "records per load batch (overrides NEO4J_BATCH_SIZE)")
		workers    = flag.Int("workers", 0, "concurrent batch submitters (overrides LOAD_WORKERS)")
	)
	flag.Parse()

	stages, err := pipeline.ParseStages(*stagesFlag)
	if err != nil {
		fmt.Printf("invalid -stages: %v\n", err)
		os.Exit(2)
	}

	application, err := app.New(app.Overrides{
		DataDir:   *dataDir,
		OutputDir: *outputDir,
		BatchSize: *batchSize,
		Workers:   *workers,
	})
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := pipeline.NewRunner(application).Run(ctx, stages); err != nil {
		application.Log.Error("pipeline failed", "error", err)
		application.Close(ctx)
		os.Exit(1)
	}
	application.Close(ctx)
}
