// Package report renders the pipeline's file artifacts: the data quality
// report, the node and relationship statistics report, and the per-query
// result files.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/medwatch/claimgraph/internal/cleanse"
)

const (
	ruleHeavy = "================================================================================"
	ruleLight = "--------------------------------------------------------------------------------"

	timestampLayout = "2006-01-02 15:04:05"
)

// RenderQualityReport produces the two-part data quality report: per-kind
// null profiles of the raw inputs, then the drop accounting after
// cleansing. Kinds render in the given order.
func RenderQualityReport(generated time.Time, kinds []cleanse.KindQuality) string {
	var b strings.Builder

	b.WriteString(ruleHeavy + "\n")
	b.WriteString("INITIAL DATA QUALITY REPORT\n")
	b.WriteString(ruleHeavy + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format(timestampLayout))

	for _, q := range kinds {
		fmt.Fprintf(&b, "\n\n%s Dataset\n", strings.ToUpper(q.Kind))
		b.WriteString(ruleLight + "\n")
		fmt.Fprintf(&b, "Total Records: %d\n", q.InitialRows)
		fmt.Fprintf(&b, "Total Columns: %d\n", q.Columns)
		b.WriteString("\nNull Counts:\n")
		for _, nc := range q.NullCounts {
			if nc.Nulls == 0 {
				continue
			}
			pct := 0.0
			if q.InitialRows > 0 {
				pct = float64(nc.Nulls) / float64(q.InitialRows) * 100
			}
			fmt.Fprintf(&b, "  %s: %d (%.2f%%)\n", nc.Column, nc.Nulls, pct)
		}
	}

	b.WriteString("\n\n" + ruleHeavy + "\n")
	b.WriteString("FINAL DATA QUALITY REPORT\n")
	b.WriteString(ruleHeavy + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format(timestampLayout))

	for _, q := range kinds {
		fmt.Fprintf(&b, "\n\n%s Dataset\n", strings.ToUpper(q.Kind))
		b.WriteString(ruleLight + "\n")
		fmt.Fprintf(&b, "Initial Records: %d\n", q.InitialRows)
		fmt.Fprintf(&b, "Final Records: %d\n", q.FinalRows)
		fmt.Fprintf(&b, "Records Dropped: %d\n", q.Dropped())
		fmt.Fprintf(&b, "Drop Rate: %.2f%%\n", q.DropRate())
	}

	return b.String()
}
