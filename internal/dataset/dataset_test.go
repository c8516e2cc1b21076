package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/medwatch/claimgraph/internal/types"
)

func testPaths(t *testing.T) Paths {
	t.Helper()
	p := Paths{DataDir: t.TempDir(), OutputDir: t.TempDir()}
	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	return p
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestReadTableBOMAndRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.csv")
	content := "\xEF\xBB\xBFBeneID,DOB,State\nBENE1,2009-04-12,39\nBENE2,1943-01-01\n\nBENE3, 2009-04-12 ,5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	want := []string{"BeneID", "DOB", "State"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Fatalf("columns: want=%v got=%v", want, table.Columns)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows: want=3 got=%d", len(table.Rows))
	}
	if table.Rows[0]["BeneID"] != "BENE1" {
		t.Fatalf("first id: want=BENE1 got=%q", table.Rows[0]["BeneID"])
	}
	if table.Rows[1]["State"] != "" {
		t.Fatalf("ragged cell should read empty, got %q", table.Rows[1]["State"])
	}
	if table.Rows[2]["DOB"] != "2009-04-12" {
		t.Fatalf("cells should be trimmed, got %q", table.Rows[2]["DOB"])
	}
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"))
	if !os.IsNotExist(err) {
		t.Fatalf("want not-exist error, got %v", err)
	}
}

func TestBeneficiaryRowsRoundTrip(t *testing.T) {
	paths := testPaths(t)
	path := paths.Processed(CleanedBeneficiaryFile)

	age := 67
	rows := []types.BeneficiaryRow{
		{
			ID: "BENE1", Age: &age, State: "39", County: "230", Gender: "1", Race: "1",
			IsDeceased: false,
			Conditions: map[string]bool{"ChronicCond_Diabetes": true, "RenalDiseaseIndicator": false},
		},
		{
			ID: "BENE2", Age: nil, State: "UNKNOWN", County: "UNKNOWN", Gender: "2", Race: "3",
			IsDeceased: true,
			Conditions: map[string]bool{"ChronicCond_Diabetes": false, "RenalDiseaseIndicator": true},
		},
	}
	if err := WriteBeneficiaryRows(path, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadBeneficiaryRows(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Fatalf("round trip mismatch:\nwant=%+v\ngot=%+v", rows, got)
	}
}

func TestClaimRowsRoundTrip(t *testing.T) {
	paths := testPaths(t)
	path := paths.Processed(CleanedInpatientFile)

	duration := 7
	rows := []types.ClaimRow{
		{
			ID: "CLM1", ProviderID: "PRV1", BeneficiaryID: "BENE1",
			StartDate: date(2009, 4, 12), EndDate: date(2009, 4, 19),
			AdmissionDate: date(2009, 4, 12), DischargeDate: date(2009, 4, 19),
			Reimbursed: 26000, Deductible: 1068, TotalCost: 27068,
			DurationDays: &duration,
			Attending:    "PHY001", Other: "PHY002",
			DiagnosisCodes: []string{"4019", "2724"},
			ProcedureCodes: []string{"9904"},
		},
		{
			ID: "CLM2", ProviderID: "PRV2", BeneficiaryID: "BENE2",
			Reimbursed: 0, Deductible: 0, TotalCost: 0,
		},
	}
	if err := WriteClaimRows(path, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadClaimRows(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Fatalf("round trip mismatch:\nwant=%+v\ngot=%+v", rows, got)
	}
}

func TestNodeSetRoundTrip(t *testing.T) {
	paths := testPaths(t)

	age := 82
	set := &types.NodeSet{
		Providers: []types.ProviderNode{{ID: "PRV1", IsFraud: true}, {ID: "PRV2", IsFraud: false}},
		Beneficiaries: []types.BeneficiaryNode{{
			ID: "BENE1", Age: &age, State: "39", County: "230", Gender: "1", Race: "1",
			IsDeceased: true,
			Conditions: map[string]bool{"ChronicCond_Heartfailure": true},
		}},
		Claims: []types.ClaimNode{{
			ID: "CLM1", Type: types.ClaimInpatient,
			TotalCost: 27068, Reimbursed: 26000, Deductible: 1068,
			StartDate: date(2009, 4, 12), EndDate: date(2009, 4, 19),
		}},
		Physicians: []types.PhysicianNode{{ID: "PHY001"}},
		Codes:      []types.MedicalCodeNode{{Code: "4019", Type: types.CodeDiagnosis}},
	}
	if err := WriteNodeSet(paths, set); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, missing, err := ReadNodeSet(paths)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("missing files: want=none got=%v", missing)
	}
	if !reflect.DeepEqual(got, set) {
		t.Fatalf("round trip mismatch:\nwant=%+v\ngot=%+v", set, got)
	}
}

func TestReadNodeSetReportsMissingFiles(t *testing.T) {
	paths := testPaths(t)

	set, missing, err := ReadNodeSet(paths)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(missing) != 5 {
		t.Fatalf("missing files: want=5 got=%d (%v)", len(missing), missing)
	}
	if set.Total() != 0 {
		t.Fatalf("total nodes: want=0 got=%d", set.Total())
	}
}

func TestEdgeSetRoundTrip(t *testing.T) {
	paths := testPaths(t)

	set := &types.EdgeSet{
		Filed:    []types.FiledEdge{{ProviderID: "PRV1", ClaimID: "CLM1"}},
		HasClaim: []types.HasClaimEdge{{BeneficiaryID: "BENE1", ClaimID: "CLM1"}},
		AttendedBy: []types.AttendedByEdge{
			{ClaimID: "CLM1", PhysicianID: "PHY001", Role: types.RoleAttending},
			{ClaimID: "CLM1", PhysicianID: "PHY002", Role: types.RoleOther},
		},
		Includes: []types.IncludesCodeEdge{
			{ClaimID: "CLM1", Code: "4019", Type: types.CodeDiagnosis},
			{ClaimID: "CLM1", Code: "9904", Type: types.CodeProcedure},
		},
	}
	if err := WriteEdgeSet(paths, set); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, missing, err := ReadEdgeSet(paths)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("missing files: want=none got=%v", missing)
	}
	if !reflect.DeepEqual(got, set) {
		t.Fatalf("round trip mismatch:\nwant=%+v\ngot=%+v", set, got)
	}
}
