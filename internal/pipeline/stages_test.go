package pipeline

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseStagesDefaultsToAll(t *testing.T) {
	for _, in := range []string{"", "all", " ALL "} {
		got, err := ParseStages(in)
		if err != nil {
			t.Fatalf("ParseStages(%q): %v", in, err)
		}
		if !reflect.DeepEqual(got, AllStages) {
			t.Fatalf("ParseStages(%q): want=%v got=%v", in, AllStages, got)
		}
	}
}

func TestParseStagesCanonicalOrder(t *testing.T) {
	got, err := ParseStages("load,cleanse")
	if err != nil {
		t.Fatalf("ParseStages: %v", err)
	}
	want := []Stage{StageCleanse, StageLoad}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order: want=%v got=%v", want, got)
	}
}

func TestParseStagesDedupesAndTrims(t *testing.T) {
	got, err := ParseStages(" Query , query ,report ")
	if err != nil {
		t.Fatalf("ParseStages: %v", err)
	}
	want := []Stage{StageQuery, StageReport}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("selection: want=%v got=%v", want, got)
	}
}

func TestParseStagesRejectsUnknown(t *testing.T) {
	_, err := ParseStages("cleanse,wibble")
	if err == nil || !strings.Contains(err.Error(), "wibble") {
		t.Fatalf("want unknown-stage error naming the stage, got %v", err)
	}
}

func TestParseStagesRejectsEmptySelection(t *testing.T) {
	if _, err := ParseStages(",,"); err == nil {
		t.Fatal("want error for empty selection")
	}
}
