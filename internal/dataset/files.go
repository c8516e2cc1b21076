package dataset

import (
	"os"
	"path/filepath"
)

// Raw input files, named as distributed with the public claims dataset.
const (
	RawBeneficiaryFile = "Train_Beneficiarydata-1542865627584.csv"
	RawInpatientFile   = "Train_Inpatientdata-1542865627584.csv"
	RawOutpatientFile  = "Train_Outpatientdata-1542865627584.csv"
	RawProviderFile    = "Train-1542865627584.csv"
)

// Intermediate files written under <data-dir>/processed. Each stage reads
// its inputs from disk so stage subsets can run in separate invocations.
const (
	CleanedBeneficiaryFile = "beneficiary_cleaned.csv"
	CleanedProviderFile    = "provider_cleaned.csv"
	CleanedInpatientFile   = "inpatient_cleaned.csv"
	CleanedOutpatientFile  = "outpatient_cleaned.csv"

	ProviderNodesFile    = "provider_nodes.csv"
	BeneficiaryNodesFile = "beneficiary_nodes.csv"
	ClaimNodesFile       = "claim_nodes.csv"
	PhysicianNodesFile   = "physician_nodes.csv"
	MedicalCodeNodesFile = "medical_code_nodes.csv"

	FiledEdgesFile        = "filed_relationships.csv"
	HasClaimEdgesFile     = "has_claim_relationships.csv"
	AttendedByEdgesFile   = "attended_by_relationships.csv"
	IncludesCodeEdgesFile = "includes_code_relationships.csv"
)

const (
	QualityReportFile    = "data_quality_report.txt"
	StatisticsReportFile = "node_relationship_statistics.txt"
)

// Paths resolves the directory layout of a pipeline run.
type Paths struct {
	DataDir   string
	OutputDir string
}

func (p Paths) Raw(name string) string       { return filepath.Join(p.DataDir, "raw", name) }
func (p Paths) Processed(name string) string { return filepath.Join(p.DataDir, "processed", name) }
func (p Paths) Stats(name string) string     { return filepath.Join(p.DataDir, "stats", name) }
func (p Paths) Results(name string) string   { return filepath.Join(p.OutputDir, "results", name) }
func (p Paths) ResultsJSON(name string) string {
	return filepath.Join(p.OutputDir, "results", "json", name)
}

func (p Paths) EnsureDirs() error {
	for _, dir := range []string{
		filepath.Join(p.DataDir, "raw"),
		filepath.Join(p.DataDir, "processed"),
		filepath.Join(p.DataDir, "stats"),
		filepath.Join(p.OutputDir, "results", "json"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
