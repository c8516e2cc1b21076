package report

import (
	"strings"
	"testing"
	"time"

	"github.com/medwatch/claimgraph/internal/data/graph"
	"github.com/medwatch/claimgraph/internal/types"
)

func TestFormatCount(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		138556:   "138,556",
		5410:     "5,410",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := formatCount(in); got != want {
			t.Errorf("formatCount(%d): want=%q got=%q", in, want, got)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[float64]string{
		0:         "$0.00",
		1234.5:    "$1,234.50",
		1107576.7: "$1,107,576.70",
		-45.25:    "-$45.25",
		26000:     "$26,000.00",
		999.994:   "$999.99",
	}
	for in, want := range cases {
		if got := formatMoney(in); got != want {
			t.Errorf("formatMoney(%v): want=%q got=%q", in, want, got)
		}
	}
}

func TestStatisticsReportSections(t *testing.T) {
	stats := &graph.Statistics{
		NodeCounts: map[types.NodeKind]int64{
			types.NodeProvider:    5410,
			types.NodeBeneficiary: 138556,
			types.NodeClaim:       558211,
			types.NodePhysician:   82063,
			types.NodeMedicalCode: 14773,
		},
		EdgeCounts: map[types.EdgeKind]int64{
			types.EdgeFiled:        558211,
			types.EdgeHasClaim:     558211,
			types.EdgeAttendedBy:   1200000,
			types.EdgeIncludesCode: 2500000,
		},
		Providers:             5410,
		FraudProviders:        506,
		Claims:                558211,
		InpatientClaims:       40474,
		OutpatientClaims:      517737,
		TotalCost:             1107576700.5,
		AvgCost:               1984.2,
		MinCost:               0,
		MaxCost:               125000,
		FraudClaims:           212796,
		FraudTotalCost:        500000000,
		FraudAvgCost:          2349.6,
		FraudMaxCost:          125000,
		Beneficiaries:         138556,
		DeceasedBeneficiaries: 1421,
		AvgAge:                73.4,
		MinAge:                26,
		MaxAge:                101,
		Physicians:            82063,
		PhysiciansWithClaims:  81000,
		AvgClaimsPerPhysician: 6.8,
		MaxClaimsPerPhysician: 5120,
		MedicalCodes:          14773,
		DiagnosisCodes:        11000,
		ProcedureCodes:        3773,
	}

	out := RenderStatisticsReport(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), stats)

	for _, want := range []string{
		"NODE AND RELATIONSHIP STATISTICS REPORT",
		"Generated: 2026-03-14 10:00:00",
		"1. NODE COUNTS",
		"2. RELATIONSHIP COUNTS",
		"3. FRAUD PROVIDER STATISTICS",
		"4. CLAIM STATISTICS",
		"5. FRAUD CLAIM STATISTICS",
		"6. BENEFICIARY STATISTICS",
		"7. PHYSICIAN STATISTICS",
		"8. MEDICAL CODE STATISTICS",
		"9. DATA QUALITY CHECKS",
		"SUMMARY",
		"   Total Nodes: 799,013",
		"   Total Relationships: 4,816,422",
		"   Fraud Providers: 506 (9.35%)",
		"   Total Cost: $1,107,576,700.50",
		"   Fraud Claims: 212,796 (38.12% of all claims)",
		"   Average Age: 73.4",
		"   OK: no orphan claims found",
		"   OK: no duplicate relationships found",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(out, "WARNING:") {
		t.Fatal("clean snapshot should not render warnings")
	}
}

func TestStatisticsReportWarnings(t *testing.T) {
	stats := &graph.Statistics{
		NodeCounts:             map[types.NodeKind]int64{},
		EdgeCounts:             map[types.EdgeKind]int64{},
		OrphanClaimsNoProvider: 12,
		DuplicateFiled:         3,
	}

	out := RenderStatisticsReport(time.Now(), stats)

	if !strings.Contains(out, "   WARNING: orphan claims found") {
		t.Fatalf("missing orphan warning:\n%s", out)
	}
	if !strings.Contains(out, "   WARNING: duplicate relationships found") {
		t.Fatalf("missing duplicate warning:\n%s", out)
	}
	if strings.Contains(out, "OK: no orphan claims found") {
		t.Fatal("orphan OK line should not render alongside the warning")
	}
}
