// Generates small, well-formed raw claim CSVs for local pipeline runs
// without the full public dataset. Output is deterministic for a given
// seed. Usage: go run scripts/make_sample_data.go [data-dir]
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

const (
	seed = 1542865627584

	providerCount    = 10
	beneficiaryCount = 40
	physicianCount   = 25
	inpatientCount   = 60
	outpatientCount  = 120
)

var chronicColumns = []string{
	"ChronicCond_Alzheimer", "ChronicCond_Heartfailure", "ChronicCond_KidneyDisease",
	"ChronicCond_Cancer", "ChronicCond_ObstrPulmonary", "ChronicCond_Depression",
	"ChronicCond_Diabetes", "ChronicCond_IschemicHeart", "ChronicCond_Osteoporasis",
	"ChronicCond_rheumatoidarthritis", "ChronicCond_stroke",
}

var diagnosisPool = []string{"4019", "2724", "25000", "V5869", "42731", "2720", "4011", "2449", "V5861", "2859"}

var procedurePool = []string{"9904", "8154", "66", "3893", "3995", "4516"}

func main() {
	root := "data"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	rawDir := filepath.Join(root, "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		exitf("create %s: %v", rawDir, err)
	}

	rng := rand.New(rand.NewSource(seed))

	providers := make([]string, providerCount)
	for i := range providers {
		providers[i] = fmt.Sprintf("PRV5%04d", 1001+i)
	}
	beneficiaries := make([]string, beneficiaryCount)
	for i := range beneficiaries {
		beneficiaries[i] = fmt.Sprintf("BENE%05d", 11001+i)
	}
	physicians := make([]string, physicianCount)
	for i := range physicians {
		physicians[i] = fmt.Sprintf("PHY%06d", 330001+i)
	}

	writeProviders(rng, filepath.Join(rawDir, "Train-1542865627584.csv"), providers)
	writeBeneficiaries(rng, filepath.Join(rawDir, "Train_Beneficiarydata-1542865627584.csv"), beneficiaries)

	claimID := 46001
	claimID = writeClaims(rng, filepath.Join(rawDir, "Train_Inpatientdata-1542865627584.csv"),
		true, inpatientCount, claimID, providers, beneficiaries, physicians)
	writeClaims(rng, filepath.Join(rawDir, "Train_Outpatientdata-1542865627584.csv"),
		false, outpatientCount, claimID, providers, beneficiaries, physicians)

	fmt.Printf("sample data written to %s\n", rawDir)
}

func writeProviders(rng *rand.Rand, path string, providers []string) {
	rows := [][]string{{"Provider", "PotentialFraud"}}
	for _, id := range providers {
		label := "No"
		// Roughly a third of providers carry the fraud label so the
		// pattern queries have something to find.
		if rng.Intn(3) == 0 {
			label = "Yes"
		}
		rows = append(rows, []string{id, label})
	}
	writeCSV(path, rows)
}

func writeBeneficiaries(rng *rand.Rand, path string, beneficiaries []string) {
	header := []string{"BeneID", "DOB", "DOD", "Gender", "Race", "RenalDiseaseIndicator", "State", "County"}
	header = append(header, chronicColumns...)

	rows := [][]string{header}
	for _, id := range beneficiaries {
		dob := fmt.Sprintf("%d-%02d-%02d", 1920+rng.Intn(50), 1+rng.Intn(12), 1+rng.Intn(28))
		dod := ""
		if rng.Intn(12) == 0 {
			dod = fmt.Sprintf("2009-%02d-%02d", 1+rng.Intn(12), 1+rng.Intn(28))
		}
		renal := "0"
		if rng.Intn(5) == 0 {
			renal = "Y"
		}
		row := []string{
			id, dob, dod,
			strconv.Itoa(1 + rng.Intn(2)),
			strconv.Itoa(1 + rng.Intn(5)),
			renal,
			strconv.Itoa(1 + rng.Intn(54)),
			strconv.Itoa(10 + rng.Intn(990)),
		}
		for range chronicColumns {
			// Source alphabet: 1 = condition present, 2 = absent.
			if rng.Intn(3) == 0 {
				row = append(row, "1")
			} else {
				row = append(row, "2")
			}
		}
		rows = append(rows, row)
	}
	writeCSV(path, rows)
}

func writeClaims(rng *rand.Rand, path string, inpatient bool, count, nextID int, providers, beneficiaries, physicians []string) int {
	header := []string{
		"ClaimID", "Provider", "BeneID", "ClaimStartDt", "ClaimEndDt",
		"AdmissionDt", "DischargeDt", "InscClaimAmtReimbursed", "DeductibleAmtPaid",
		"AttendingPhysician", "OperatingPhysician", "OtherPhysician",
	}
	for i := 1; i <= 10; i++ {
		header = append(header, fmt.Sprintf("ClmDiagnosisCode_%d", i))
	}
	for i := 1; i <= 6; i++ {
		header = append(header, fmt.Sprintf("ClmProcedureCode_%d", i))
	}

	rows := [][]string{header}
	for n := 0; n < count; n++ {
		id := fmt.Sprintf("CLM%d", nextID)
		nextID++

		startDay := rng.Intn(330)
		duration := 0
		if inpatient {
			duration = 1 + rng.Intn(14)
		}
		start := dayOf2009(startDay)
		end := dayOf2009(startDay + duration)

		admission, discharge := "", ""
		reimbursed, deductible := 10+rng.Intn(2000), 0
		if inpatient {
			admission, discharge = start, end
			reimbursed = 1000 + 1000*rng.Intn(40)
			deductible = 1068
		}

		operating, other := "", ""
		if inpatient && rng.Intn(2) == 0 {
			operating = physicians[rng.Intn(len(physicians))]
		}
		if rng.Intn(3) == 0 {
			other = physicians[rng.Intn(len(physicians))]
		}

		row := []string{
			id,
			providers[rng.Intn(len(providers))],
			beneficiaries[rng.Intn(len(beneficiaries))],
			start, end, admission, discharge,
			strconv.Itoa(reimbursed), strconv.Itoa(deductible),
			physicians[rng.Intn(len(physicians))],
			operating, other,
		}

		diagnoses := 1 + rng.Intn(4)
		for i := 0; i < 10; i++ {
			if i < diagnoses {
				row = append(row, diagnosisPool[rng.Intn(len(diagnosisPool))])
			} else {
				row = append(row, "")
			}
		}
		procedures := 0
		if inpatient {
			procedures = rng.Intn(3)
		}
		for i := 0; i < 6; i++ {
			if i < procedures {
				row = append(row, procedurePool[rng.Intn(len(procedurePool))])
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	writeCSV(path, rows)
	return nextID
}

func dayOf2009(offset int) string {
	month := 1 + offset/30
	day := 1 + offset%30
	if month > 12 {
		month, day = 12, 28
	}
	return fmt.Sprintf("2009-%02d-%02d", month, day)
}

func writeCSV(path string, rows [][]string) {
	f, err := os.Create(path)
	if err != nil {
		exitf("create %s: %v", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		exitf("write %s: %v", path, err)
	}
	w.Flush()
	if err := f.Close(); err != nil {
		exitf("close %s: %v", path, err)
	}
	fmt.Printf("  wrote %s (%d records)\n", filepath.Base(path), len(rows)-1)
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
