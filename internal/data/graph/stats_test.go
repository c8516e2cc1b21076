package graph

import (
	"testing"

	"github.com/medwatch/claimgraph/internal/types"
)

func TestStatisticsDerivedFigures(t *testing.T) {
	stats := &Statistics{
		NodeCounts: map[types.NodeKind]int64{
			types.NodeProvider:    100,
			types.NodeBeneficiary: 400,
			types.NodeClaim:       900,
		},
		EdgeCounts: map[types.EdgeKind]int64{
			types.EdgeFiled:    900,
			types.EdgeHasClaim: 900,
		},
		Providers:      100,
		FraudProviders: 9,
		Claims:         400,
		FraudClaims:    100,
	}

	if got := stats.TotalNodes(); got != 1400 {
		t.Fatalf("total nodes: want=1400 got=%d", got)
	}
	if got := stats.TotalEdges(); got != 1800 {
		t.Fatalf("total edges: want=1800 got=%d", got)
	}
	if got := stats.LegitProviders(); got != 91 {
		t.Fatalf("legit providers: want=91 got=%d", got)
	}
	if got := stats.FraudRate(); got != 9.0 {
		t.Fatalf("fraud rate: want=9.0 got=%v", got)
	}
	if got := stats.FraudClaimShare(); got != 25.0 {
		t.Fatalf("fraud claim share: want=25.0 got=%v", got)
	}
}

func TestStatisticsRatesOnEmptyGraph(t *testing.T) {
	stats := &Statistics{}
	if got := stats.FraudRate(); got != 0 {
		t.Fatalf("fraud rate on empty graph: want=0 got=%v", got)
	}
	if got := stats.FraudClaimShare(); got != 0 {
		t.Fatalf("fraud claim share on empty graph: want=0 got=%v", got)
	}
}
