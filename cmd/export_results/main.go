package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/medwatch/claimgraph/internal/app"
	"github.com/medwatch/claimgraph/internal/dataset"
	"github.com/medwatch/claimgraph/internal/report"
)

// Converts every result CSV under <output-dir>/results into a JSON
// document under <output-dir>/results/json. Per-file failures are logged
// and skipped so one bad file never blocks the rest.
func main() {
	outputDir := flag.String("output-dir", "", "output directory (overrides OUTPUT_DIR)")
	flag.Parse()

	application, err := app.New(app.Overrides{OutputDir: *outputDir})
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close(context.Background())
	log := application.Log.With("component", "ExportResults")

	paths := application.Paths()
	entries, err := os.ReadDir(paths.Results(""))
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("no results directory, nothing to export", "dir", paths.Results(""))
		return
	}
	if err != nil {
		log.Error("reading results directory", "error", err)
		os.Exit(1)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".csv") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		log.Warn("no result files to export", "dir", paths.Results(""))
		return
	}

	if err := os.MkdirAll(paths.ResultsJSON(""), 0o755); err != nil {
		log.Error("creating json directory", "error", err)
		os.Exit(1)
	}

	converted := 0
	for _, name := range names {
		slug := strings.TrimSuffix(name, ".csv")
		table, err := dataset.ReadTable(paths.Results(name))
		if err != nil {
			log.Error("result file unreadable, skipped", "file", name, "error", err)
			continue
		}
		doc, err := report.ConvertResult(slug, table)
		if err != nil {
			log.Error("result conversion failed, skipped", "file", name, "error", err)
			continue
		}
		target := paths.ResultsJSON(slug + ".json")
		if err := os.WriteFile(target, doc, 0o644); err != nil {
			log.Error("writing json failed, skipped", "file", name, "error", err)
			continue
		}
		log.Info("result exported", "file", name, "rows", len(table.Rows))
		converted++
	}
	log.Info("export complete", "converted", converted, "total", len(names))
}
