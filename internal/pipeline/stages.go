// Package pipeline orchestrates the claim graph stages: cleanse raw
// inputs, transform them into node and edge sets, prepare the store
// schema, bulk-load, validate integrity, run the analytic catalog, and
// render the statistics report. Each stage reads its inputs from disk so
// subsets can run in separate invocations.
package pipeline

import (
	"fmt"
	"strings"
)

type Stage string

const (
	StageCleanse   Stage = "cleanse"
	StageTransform Stage = "transform"
	StageSchema    Stage = "schema"
	StageLoad      Stage = "load"
	StageValidate  Stage = "validate"
	StageQuery     Stage = "query"
	StageReport    Stage = "report"
)

// AllStages lists every stage in execution order.
var AllStages = []Stage{
	StageCleanse,
	StageTransform,
	StageSchema,
	StageLoad,
	StageValidate,
	StageQuery,
	StageReport,
}

// ParseStages resolves a comma-separated stage selection. Empty or "all"
// selects everything; any subset runs in canonical order regardless of
// how it was written.
func ParseStages(s string) ([]Stage, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return append([]Stage(nil), AllStages...), nil
	}

	selected := map[Stage]bool{}
	for _, part := range strings.Split(s, ",") {
		name := Stage(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !validStage(name) {
			return nil, fmt.Errorf("unknown stage %q (valid: %s)", part, stageNames())
		}
		selected[name] = true
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no stages selected")
	}

	out := make([]Stage, 0, len(selected))
	for _, stage := range AllStages {
		if selected[stage] {
			out = append(out, stage)
		}
	}
	return out, nil
}

func validStage(s Stage) bool {
	for _, stage := range AllStages {
		if stage == s {
			return true
		}
	}
	return false
}

func stageNames() string {
	names := make([]string, 0, len(AllStages))
	for _, stage := range AllStages {
		names = append(names, string(stage))
	}
	return strings.Join(names, ", ")
}
