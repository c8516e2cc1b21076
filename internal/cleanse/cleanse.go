package cleanse

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/medwatch/claimgraph/internal/dataset"
	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/types"
)

// Normalizer applies the per-kind cleansing rules to raw tables: date
// coercion to null, derived fields, null policies, and key-completeness
// drops. Malformed cells degrade to null; only a whole-file read failure is
// fatal for a kind.
type Normalizer struct {
	log *logger.Logger
	now time.Time
}

func NewNormalizer(log *logger.Logger, now time.Time) *Normalizer {
	return &Normalizer{log: log.With("stage", "cleanse"), now: now}
}

// ColumnNulls is the per-column count of empty cells in a raw table.
type ColumnNulls struct {
	Column string
	Nulls  int
}

// KindQuality carries the record counts the data quality report renders for
// one source kind.
type KindQuality struct {
	Kind        string
	InitialRows int
	Columns     int
	NullCounts  []ColumnNulls
	FinalRows   int
}

func (q KindQuality) Dropped() int {
	return q.InitialRows - q.FinalRows
}

func (q KindQuality) DropRate() float64 {
	if q.InitialRows == 0 {
		return 0
	}
	return float64(q.Dropped()) / float64(q.InitialRows) * 100
}

func tableQuality(kind string, table *dataset.Table) KindQuality {
	q := KindQuality{
		Kind:        kind,
		InitialRows: len(table.Rows),
		Columns:     len(table.Columns),
	}
	for _, col := range table.Columns {
		nulls := 0
		for _, cells := range table.Rows {
			if cells[col] == "" {
				nulls++
			}
		}
		q.NullCounts = append(q.NullCounts, ColumnNulls{Column: col, Nulls: nulls})
	}
	return q
}

// Beneficiaries cleans the beneficiary table. Death date presence drives
// isDeceased; age floors the elapsed DOB span over 365.25-day years; state
// and county default to the UNKNOWN literal; chronic-condition indicators
// normalize to booleans with null meaning "no evidence of condition".
func (n *Normalizer) Beneficiaries(table *dataset.Table) ([]types.BeneficiaryRow, KindQuality) {
	quality := tableQuality("beneficiary", table)

	condCols := conditionColumnsOf(table.Columns)
	rows := make([]types.BeneficiaryRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		dob := parseRawDate(cells["DOB"])
		dod := parseRawDate(cells["DOD"])

		row := types.BeneficiaryRow{
			ID:         cells["BeneID"],
			Age:        ageAt(dob, n.now),
			State:      orUnknown(cells["State"]),
			County:     orUnknown(cells["County"]),
			Gender:     cells["Gender"],
			Race:       cells["Race"],
			IsDeceased: dod != nil,
			Conditions: map[string]bool{},
		}
		for _, col := range condCols {
			row.Conditions[col] = normalizeFlag(cells[col])
		}
		rows = append(rows, row)
	}

	quality.FinalRows = len(rows)
	n.log.Info("cleaned beneficiary records",
		"initial", quality.InitialRows,
		"final", quality.FinalRows,
		"dropped", quality.Dropped(),
	)
	return rows, quality
}

// Providers cleans the provider label table. Rows without a provider id are
// dropped; the fraud label "Yes" becomes a boolean flag.
func (n *Normalizer) Providers(table *dataset.Table) ([]types.ProviderRow, KindQuality) {
	quality := tableQuality("provider", table)

	rows := make([]types.ProviderRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		id := cells["Provider"]
		if id == "" {
			continue
		}
		rows = append(rows, types.ProviderRow{
			ID:      id,
			IsFraud: strings.EqualFold(cells["PotentialFraud"], "Yes"),
		})
	}

	quality.FinalRows = len(rows)
	n.log.Info("cleaned provider records",
		"initial", quality.InitialRows,
		"final", quality.FinalRows,
		"dropped", quality.Dropped(),
	)
	return rows, quality
}

// Claims cleans one claims table (inpatient or outpatient). Rows missing
// any of the three edge keys are dropped; missing cost components fill to
// zero before totalCost is computed.
func (n *Normalizer) Claims(table *dataset.Table, kind string) ([]types.ClaimRow, KindQuality) {
	quality := tableQuality(kind, table)

	rows := make([]types.ClaimRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		if cells["ClaimID"] == "" || cells["Provider"] == "" || cells["BeneID"] == "" {
			continue
		}

		start := parseRawDate(cells["ClaimStartDt"])
		end := parseRawDate(cells["ClaimEndDt"])
		reimbursed := parseMoney(cells["InscClaimAmtReimbursed"])
		deductible := parseMoney(cells["DeductibleAmtPaid"])

		row := types.ClaimRow{
			ID:            cells["ClaimID"],
			ProviderID:    cells["Provider"],
			BeneficiaryID: cells["BeneID"],
			StartDate:     start,
			EndDate:       end,
			AdmissionDate: parseRawDate(cells["AdmissionDt"]),
			DischargeDate: parseRawDate(cells["DischargeDt"]),
			Reimbursed:    reimbursed,
			Deductible:    deductible,
			TotalCost:     reimbursed + deductible,
			DurationDays:  daysBetween(start, end),
		}
		for _, slot := range types.PhysicianSlots {
			switch slot.Role {
			case types.RoleAttending:
				row.Attending = cells[slot.Column]
			case types.RoleOperating:
				row.Operating = cells[slot.Column]
			case types.RoleOther:
				row.Other = cells[slot.Column]
			}
		}
		for _, slot := range types.CodeSlots {
			code := cells[slot.Column]
			if code == "" {
				continue
			}
			if slot.Type == types.CodeDiagnosis {
				row.DiagnosisCodes = append(row.DiagnosisCodes, code)
			} else {
				row.ProcedureCodes = append(row.ProcedureCodes, code)
			}
		}
		rows = append(rows, row)
	}

	quality.FinalRows = len(rows)
	n.log.Info("cleaned claim records",
		"source", kind,
		"initial", quality.InitialRows,
		"final", quality.FinalRows,
		"dropped", quality.Dropped(),
	)
	return rows, quality
}

func conditionColumnsOf(columns []string) []string {
	var out []string
	for _, col := range columns {
		if strings.Contains(col, "ChronicCond") || col == "RenalDiseaseIndicator" {
			out = append(out, col)
		}
	}
	return out
}

var rawDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

func parseRawDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range rawDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func ageAt(dob *time.Time, now time.Time) *int {
	if dob == nil {
		return nil
	}
	days := now.Sub(*dob).Hours() / 24
	age := int(math.Floor(days / 365.25))
	return &age
}

func daysBetween(start, end *time.Time) *int {
	if start == nil || end == nil {
		return nil
	}
	days := int(end.Sub(*start).Hours() / 24)
	return &days
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "UNKNOWN"
	}
	return s
}

// normalizeFlag collapses the indicator alphabet (Y/N, y/n, 1/0, blank) to
// a boolean; blank means no evidence of the condition, not unknown.
func normalizeFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "1", "true":
		return true
	default:
		return false
	}
}

func parseMoney(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
