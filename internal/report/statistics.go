package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/medwatch/claimgraph/internal/data/graph"
	"github.com/medwatch/claimgraph/internal/types"
)

// RenderStatisticsReport produces the node and relationship statistics
// report from one collected snapshot.
func RenderStatisticsReport(generated time.Time, stats *graph.Statistics) string {
	var b strings.Builder

	b.WriteString(ruleHeavy + "\n")
	b.WriteString("NODE AND RELATIONSHIP STATISTICS REPORT\n")
	b.WriteString(ruleHeavy + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format(timestampLayout))

	b.WriteString("1. NODE COUNTS\n")
	b.WriteString(ruleLight + "\n")
	for _, kind := range types.AllNodeKinds {
		fmt.Fprintf(&b, "   %-15s : %s\n", kind.Label(), formatCount(stats.NodeCounts[kind]))
	}
	fmt.Fprintf(&b, "\n   Total Nodes: %s\n\n", formatCount(stats.TotalNodes()))

	b.WriteString("2. RELATIONSHIP COUNTS\n")
	b.WriteString(ruleLight + "\n")
	for _, kind := range types.AllEdgeKinds {
		fmt.Fprintf(&b, "   %-15s : %s\n", kind.RelType(), formatCount(stats.EdgeCounts[kind]))
	}
	fmt.Fprintf(&b, "\n   Total Relationships: %s\n\n", formatCount(stats.TotalEdges()))

	b.WriteString("3. FRAUD PROVIDER STATISTICS\n")
	b.WriteString(ruleLight + "\n")
	fmt.Fprintf(&b, "   Total Providers: %s\n", formatCount(stats.Providers))
	fmt.Fprintf(&b, "   Fraud Providers: %s (%.2f%%)\n", formatCount(stats.FraudProviders), stats.FraudRate())
	fmt.Fprintf(&b, "   Legitimate Providers: %s\n\n", formatCount(stats.LegitProviders()))

	b.WriteString("4. CLAIM STATISTICS\n")
	b.WriteString(ruleLight + "\n")
	fmt.Fprintf(&b, "   Total Claims: %s\n", formatCount(stats.Claims))
	fmt.Fprintf(&b, "   Inpatient Claims: %s\n", formatCount(stats.InpatientClaims))
	fmt.Fprintf(&b, "   Outpatient Claims: %s\n", formatCount(stats.OutpatientClaims))
	fmt.Fprintf(&b, "   Total Cost: %s\n", formatMoney(stats.TotalCost))
	fmt.Fprintf(&b, "   Average Cost: %s\n", formatMoney(stats.AvgCost))
	fmt.Fprintf(&b, "   Max Cost: %s\n", formatMoney(stats.MaxCost))
	fmt.Fprintf(&b, "   Min Cost: %s\n\n", formatMoney(stats.MinCost))

	b.WriteString("5. FRAUD CLAIM STATISTICS\n")
	b.WriteString(ruleLight + "\n")
	fmt.Fprintf(&b, "   Fraud Claims: %s (%.2f%% of all claims)\n", formatCount(stats.FraudClaims), stats.FraudClaimShare())
	fmt.Fprintf(&b, "   Fraud Total Cost: %s\n", formatMoney(stats.FraudTotalCost))
	fmt.Fprintf(&b, "   Fraud Average Cost: %s\n", formatMoney(stats.FraudAvgCost))
	fmt.Fprintf(&b, "   Fraud Max Cost: %s\n\n", formatMoney(stats.FraudMaxCost))

	b.WriteString("6. BENEFICIARY STATISTICS\n")
	b.WriteString(ruleLight + "\n")
	fmt.Fprintf(&b, "   Total Beneficiaries: %s\n", formatCount(stats.Beneficiaries))
	fmt.Fprintf(&b, "   Deceased Beneficiaries: %s\n", formatCount(stats.DeceasedBeneficiaries))
	fmt.Fprintf(&b, "   Average Age: %.1f\n", stats.AvgAge)
	fmt.Fprintf(&b, "   Min Age: %d\n", stats.MinAge)
	fmt.Fprintf(&b, "   Max Age: %d\n\n", stats.MaxAge)

	b.WriteString("7. PHYSICIAN STATISTICS\n")
	b.WriteString(ruleLight + "\n")
	fmt.Fprintf(&b, "   Total Physicians: %s\n", formatCount(stats.Physicians))
	fmt.Fprintf(&b, "   Physicians with Claims: %s\n", formatCount(stats.PhysiciansWithClaims))
	fmt.Fprintf(&b, "   Average Claims per Physician: %.1f\n", stats.AvgClaimsPerPhysician)
	fmt.Fprintf(&b, "   Max Claims per Physician: %s\n\n", formatCount(stats.MaxClaimsPerPhysician))

	b.WriteString("8. MEDICAL CODE STATISTICS\n")
	b.WriteString(ruleLight + "\n")
	fmt.Fprintf(&b, "   Total Medical Codes: %s\n", formatCount(stats.MedicalCodes))
	fmt.Fprintf(&b, "   Diagnosis Codes: %s\n", formatCount(stats.DiagnosisCodes))
	fmt.Fprintf(&b, "   Procedure Codes: %s\n\n", formatCount(stats.ProcedureCodes))

	b.WriteString("9. DATA QUALITY CHECKS\n")
	b.WriteString(ruleLight + "\n")
	fmt.Fprintf(&b, "   Claims without Provider: %d\n", stats.OrphanClaimsNoProvider)
	fmt.Fprintf(&b, "   Claims without Beneficiary: %d\n", stats.OrphanClaimsNoBeneficiary)
	if stats.OrphanClaimsNoProvider == 0 && stats.OrphanClaimsNoBeneficiary == 0 {
		b.WriteString("   OK: no orphan claims found\n")
	} else {
		b.WriteString("   WARNING: orphan claims found\n")
	}
	fmt.Fprintf(&b, "   Duplicate FILED relationships: %d\n", stats.DuplicateFiled)
	if stats.DuplicateFiled == 0 {
		b.WriteString("   OK: no duplicate relationships found\n")
	} else {
		b.WriteString("   WARNING: duplicate relationships found\n")
	}
	b.WriteString("\n")

	b.WriteString(ruleHeavy + "\n")
	b.WriteString("SUMMARY\n")
	b.WriteString(ruleHeavy + "\n")
	fmt.Fprintf(&b, "Total Nodes: %s\n", formatCount(stats.TotalNodes()))
	fmt.Fprintf(&b, "Total Relationships: %s\n", formatCount(stats.TotalEdges()))
	fmt.Fprintf(&b, "Fraud Providers: %s (%.2f%%)\n", formatCount(stats.FraudProviders), stats.FraudRate())
	fmt.Fprintf(&b, "Total Claims: %s\n", formatCount(stats.Claims))
	fmt.Fprintf(&b, "Total Cost: %s\n", formatMoney(stats.TotalCost))
	b.WriteString(ruleHeavy + "\n")

	return b.String()
}

// formatCount renders an integer with thousands separators.
func formatCount(n int64) string {
	return groupThousands(fmt.Sprintf("%d", n))
}

// formatMoney renders a dollar amount with thousands separators and two
// decimals.
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	out := groupThousands(s[:dot]) + s[dot:]
	if neg {
		return "-$" + out
	}
	return "$" + out
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	out := strings.Join(groups, ",")
	if neg {
		return "-" + out
	}
	return out
}
