package transform

import (
	"reflect"
	"testing"

	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func sampleInputs() ([]types.ProviderRow, []types.BeneficiaryRow, []types.ClaimRow) {
	providers := []types.ProviderRow{
		{ID: "PRV2", IsFraud: false},
		{ID: "PRV1", IsFraud: true},
	}
	beneficiaries := []types.BeneficiaryRow{
		{ID: "BENE1", State: "39", Conditions: map[string]bool{}},
		{ID: "BENE2", State: "45", Conditions: map[string]bool{}},
	}
	claims := MergeClaims(
		[]types.ClaimRow{
			{
				ID: "CLM1", ProviderID: "PRV1", BeneficiaryID: "BENE1",
				Reimbursed: 26000, Deductible: 1068, TotalCost: 27068,
				Attending: "PHY001", Other: "PHY002",
				DiagnosisCodes: []string{"4019"},
				ProcedureCodes: []string{"9904"},
			},
		},
		[]types.ClaimRow{
			{
				ID: "CLM2", ProviderID: "PRV2", BeneficiaryID: "BENE2",
				TotalCost:      80,
				Reimbursed:     80,
				Attending:      "PHY001",
				DiagnosisCodes: []string{"4019", "2724"},
			},
		},
	)
	return providers, beneficiaries, claims
}

func TestMergeClaimsStampsType(t *testing.T) {
	_, _, claims := sampleInputs()
	if len(claims) != 2 {
		t.Fatalf("merged claims: want=2 got=%d", len(claims))
	}
	if claims[0].Type != types.ClaimInpatient {
		t.Fatalf("first claim type: want=Inpatient got=%q", claims[0].Type)
	}
	if claims[1].Type != types.ClaimOutpatient {
		t.Fatalf("second claim type: want=Outpatient got=%q", claims[1].Type)
	}
}

func TestExtractNodesDedupAndOrder(t *testing.T) {
	log := testLogger(t)
	providers, beneficiaries, claims := sampleInputs()

	set, summary := ExtractNodes(providers, beneficiaries, claims, log)

	if len(set.Providers) != 2 {
		t.Fatalf("providers: want=2 got=%d", len(set.Providers))
	}
	if set.Providers[0].ID != "PRV1" || set.Providers[1].ID != "PRV2" {
		t.Fatalf("providers should be key-sorted, got %v", set.Providers)
	}
	if summary.FraudProviders != 1 || summary.LegitProviders != 1 {
		t.Fatalf("provider split: want=1/1 got=%d/%d", summary.FraudProviders, summary.LegitProviders)
	}

	if len(set.Physicians) != 2 {
		t.Fatalf("physicians: want=2 got=%d", len(set.Physicians))
	}
	if set.Physicians[0].ID != "PHY001" || set.Physicians[1].ID != "PHY002" {
		t.Fatalf("physicians should be distinct and sorted, got %v", set.Physicians)
	}

	// 4019 appears on two claims but yields one node.
	if len(set.Codes) != 3 {
		t.Fatalf("medical codes: want=3 got=%d", len(set.Codes))
	}
	byCode := map[string]types.CodeType{}
	for _, c := range set.Codes {
		byCode[c.Code] = c.Type
	}
	if byCode["4019"] != types.CodeDiagnosis {
		t.Fatalf("4019: want=Diagnosis got=%q", byCode["4019"])
	}
	if byCode["9904"] != types.CodeProcedure {
		t.Fatalf("9904: want=Procedure got=%q", byCode["9904"])
	}
	if summary.CodeTypeConflicts != 0 {
		t.Fatalf("conflicts: want=0 got=%d", summary.CodeTypeConflicts)
	}
}

func TestExtractNodesDeterministic(t *testing.T) {
	log := testLogger(t)
	providers, beneficiaries, claims := sampleInputs()

	first, _ := ExtractNodes(providers, beneficiaries, claims, log)
	second, _ := ExtractNodes(providers, beneficiaries, claims, log)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated extraction differs:\nfirst=%+v\nsecond=%+v", first, second)
	}
	if first.Total() != second.Total() {
		t.Fatalf("dedup not idempotent: %d vs %d", first.Total(), second.Total())
	}
}

func TestExtractNodesCodeTypeConflict(t *testing.T) {
	log := testLogger(t)
	claims := []types.ClaimRow{
		{ID: "CLM1", ProviderID: "PRV1", BeneficiaryID: "BENE1", ProcedureCodes: []string{"0389"}},
		{ID: "CLM2", ProviderID: "PRV1", BeneficiaryID: "BENE1", DiagnosisCodes: []string{"0389"}},
	}

	set, summary := ExtractNodes(nil, nil, claims, log)

	if len(set.Codes) != 1 {
		t.Fatalf("codes: want=1 got=%d", len(set.Codes))
	}
	// Diagnosis slots scan before procedure slots, so the diagnosis tag wins
	// regardless of row order.
	if set.Codes[0].Type != types.CodeDiagnosis {
		t.Fatalf("conflicted code type: want=Diagnosis got=%q", set.Codes[0].Type)
	}
	if summary.CodeTypeConflicts != 1 {
		t.Fatalf("conflicts: want=1 got=%d", summary.CodeTypeConflicts)
	}
}

func TestDeriveEdgesScenarios(t *testing.T) {
	log := testLogger(t)
	_, _, claims := sampleInputs()

	set := DeriveEdges(claims, log)

	if len(set.Filed) != 2 || len(set.HasClaim) != 2 {
		t.Fatalf("filed/has_claim: want=2/2 got=%d/%d", len(set.Filed), len(set.HasClaim))
	}

	// CLM1 has an attending and an other physician but no operating one.
	var clm1 []types.AttendedByEdge
	for _, e := range set.AttendedBy {
		if e.ClaimID == "CLM1" {
			clm1 = append(clm1, e)
		}
	}
	if len(clm1) != 2 {
		t.Fatalf("CLM1 attended_by: want=2 got=%d", len(clm1))
	}
	if clm1[0].Role != types.RoleAttending || clm1[0].PhysicianID != "PHY001" {
		t.Fatalf("CLM1 first edge: want attending PHY001, got %+v", clm1[0])
	}
	if clm1[1].Role != types.RoleOther || clm1[1].PhysicianID != "PHY002" {
		t.Fatalf("CLM1 second edge: want other PHY002, got %+v", clm1[1])
	}

	// 4019 is shared by both claims: two includes edges, one per claim.
	var shared []types.IncludesCodeEdge
	for _, e := range set.Includes {
		if e.Code == "4019" {
			shared = append(shared, e)
		}
	}
	if len(shared) != 2 {
		t.Fatalf("4019 includes edges: want=2 got=%d", len(shared))
	}
	if shared[0].ClaimID == shared[1].ClaimID {
		t.Fatalf("4019 edges should come from distinct claims, got %+v", shared)
	}
}

func TestDeriveEdgesReferentialClosure(t *testing.T) {
	log := testLogger(t)
	providers, beneficiaries, claims := sampleInputs()

	nodes, _ := ExtractNodes(providers, beneficiaries, claims, log)
	edges := DeriveEdges(claims, log)

	providerIDs := map[string]bool{}
	for _, n := range nodes.Providers {
		providerIDs[n.ID] = true
	}
	beneficiaryIDs := map[string]bool{}
	for _, n := range nodes.Beneficiaries {
		beneficiaryIDs[n.ID] = true
	}
	claimIDs := map[string]bool{}
	for _, n := range nodes.Claims {
		claimIDs[n.ID] = true
	}
	physicianIDs := map[string]bool{}
	for _, n := range nodes.Physicians {
		physicianIDs[n.ID] = true
	}
	codes := map[string]bool{}
	for _, n := range nodes.Codes {
		codes[n.Code] = true
	}

	for _, e := range edges.Filed {
		if !providerIDs[e.ProviderID] || !claimIDs[e.ClaimID] {
			t.Fatalf("filed edge endpoint missing: %+v", e)
		}
	}
	for _, e := range edges.HasClaim {
		if !beneficiaryIDs[e.BeneficiaryID] || !claimIDs[e.ClaimID] {
			t.Fatalf("has_claim edge endpoint missing: %+v", e)
		}
	}
	for _, e := range edges.AttendedBy {
		if !claimIDs[e.ClaimID] || !physicianIDs[e.PhysicianID] {
			t.Fatalf("attended_by edge endpoint missing: %+v", e)
		}
	}
	for _, e := range edges.Includes {
		if !claimIDs[e.ClaimID] || !codes[e.Code] {
			t.Fatalf("includes_code edge endpoint missing: %+v", e)
		}
	}
}
