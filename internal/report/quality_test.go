package report

import (
	"strings"
	"testing"
	"time"

	"github.com/medwatch/claimgraph/internal/cleanse"
)

func TestQualityReportSections(t *testing.T) {
	generated := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	kinds := []cleanse.KindQuality{
		{
			Kind:        "beneficiary",
			InitialRows: 1000,
			Columns:     25,
			NullCounts: []cleanse.ColumnNulls{
				{Column: "DOD", Nulls: 988},
				{Column: "State", Nulls: 0},
			},
			FinalRows: 1000,
		},
		{
			Kind:        "inpatient",
			InitialRows: 40474,
			Columns:     30,
			FinalRows:   40000,
		},
	}

	out := RenderQualityReport(generated, kinds)

	initial := strings.Index(out, "INITIAL DATA QUALITY REPORT")
	final := strings.Index(out, "FINAL DATA QUALITY REPORT")
	if initial < 0 || final < 0 || final < initial {
		t.Fatalf("report sections out of order: initial=%d final=%d", initial, final)
	}
	if !strings.Contains(out, "Generated: 2026-03-14 09:30:00") {
		t.Fatalf("missing generated timestamp:\n%s", out)
	}
	if got := strings.Count(out, "BENEFICIARY Dataset"); got != 2 {
		t.Fatalf("beneficiary headings: want=2 got=%d", got)
	}
	if !strings.Contains(out, "  DOD: 988 (98.80%)") {
		t.Fatalf("missing DOD null count line:\n%s", out)
	}
	if strings.Contains(out, "State:") {
		t.Fatal("zero-null column should not render a null count line")
	}
	if !strings.Contains(out, "Records Dropped: 474") {
		t.Fatalf("missing drop count:\n%s", out)
	}
	if !strings.Contains(out, "Drop Rate: 1.17%") {
		t.Fatalf("missing drop rate:\n%s", out)
	}
}

func TestQualityReportEmptyKind(t *testing.T) {
	kinds := []cleanse.KindQuality{{
		Kind:       "provider",
		NullCounts: []cleanse.ColumnNulls{{Column: "Provider", Nulls: 3}},
	}}

	out := RenderQualityReport(time.Now(), kinds)

	if !strings.Contains(out, "Total Records: 0") {
		t.Fatalf("missing zero record count:\n%s", out)
	}
	if !strings.Contains(out, "  Provider: 3 (0.00%)") {
		t.Fatalf("zero-row null percent should render 0.00%%:\n%s", out)
	}
	if !strings.Contains(out, "Drop Rate: 0.00%") {
		t.Fatalf("zero-row drop rate should render 0.00%%:\n%s", out)
	}
}
