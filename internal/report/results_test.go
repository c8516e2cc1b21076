package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteResultCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "query_01_spider_web.csv")
	columns := []string{"BeneficiaryID", "FraudProviderCount", "Providers", "AvgCost"}
	rows := [][]any{
		{"BENE11001", int64(4), []any{"PRV51459", "PRV52019"}, 22.5},
		{"BENE11002", int64(3), []any{"PRV55512"}, float64(10)},
		{nil, true},
	}

	if err := WriteResultCSV(path, columns, rows); err != nil {
		t.Fatalf("WriteResultCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read result: %v", err)
	}

	want := [][]string{
		columns,
		{"BENE11001", "4", `["PRV51459","PRV52019"]`, "22.5"},
		{"BENE11002", "3", `["PRV55512"]`, "10"},
		{"", "true", "", ""},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("result file rows:\nwant=%v\ngot=%v", want, records)
	}
}

func TestWriteResultCSVEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query_07_deceased.csv")

	if err := WriteResultCSV(path, []string{"ClaimID", "TotalCost"}, nil); err != nil {
		t.Fatalf("WriteResultCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if got := string(data); got != "ClaimID,TotalCost\n" {
		t.Fatalf("header-only file: want=%q got=%q", "ClaimID,TotalCost\n", got)
	}
}
