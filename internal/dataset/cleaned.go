package dataset

import (
	"github.com/medwatch/claimgraph/internal/types"
)

// Cleaned intermediate files keep the source column names, with derived
// columns (age, isDeceased, totalCost, claimDuration) appended the way the
// cleansing stage produced them.

var beneficiaryFixedColumns = []string{"BeneID", "age", "state", "county", "gender", "race", "isDeceased"}

func WriteBeneficiaryRows(path string, rows []types.BeneficiaryRow) error {
	conds := make([]map[string]bool, 0, len(rows))
	for _, r := range rows {
		conds = append(conds, r.Conditions)
	}
	condCols := conditionColumns(conds)

	header := append(append([]string{}, beneficiaryFixedColumns...), condCols...)
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			r.ID,
			formatOptInt(r.Age),
			r.State,
			r.County,
			r.Gender,
			r.Race,
			formatBool(r.IsDeceased),
		}
		for _, col := range condCols {
			row = append(row, formatBool(r.Conditions[col]))
		}
		out = append(out, row)
	}
	return writeCSV(path, header, out)
}

func ReadBeneficiaryRows(path string) ([]types.BeneficiaryRow, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	fixed := map[string]struct{}{}
	for _, col := range beneficiaryFixedColumns {
		fixed[col] = struct{}{}
	}
	var condCols []string
	for _, col := range table.Columns {
		if _, ok := fixed[col]; !ok {
			condCols = append(condCols, col)
		}
	}

	rows := make([]types.BeneficiaryRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		r := types.BeneficiaryRow{
			ID:         cells["BeneID"],
			Age:        parseOptIntCell(cells["age"]),
			State:      cells["state"],
			County:     cells["county"],
			Gender:     cells["gender"],
			Race:       cells["race"],
			IsDeceased: parseBoolCell(cells["isDeceased"]),
			Conditions: map[string]bool{},
		}
		for _, col := range condCols {
			r.Conditions[col] = parseBoolCell(cells[col])
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func WriteProviderRows(path string, rows []types.ProviderRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.ID, formatBool(r.IsFraud)})
	}
	return writeCSV(path, []string{"Provider", "isFraud"}, out)
}

func ReadProviderRows(path string) ([]types.ProviderRow, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	rows := make([]types.ProviderRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		rows = append(rows, types.ProviderRow{
			ID:      cells["Provider"],
			IsFraud: parseBoolCell(cells["isFraud"]),
		})
	}
	return rows, nil
}

func claimColumns() []string {
	cols := []string{
		"ClaimID", "Provider", "BeneID",
		"ClaimStartDt", "ClaimEndDt", "AdmissionDt", "DischargeDt",
		"InscClaimAmtReimbursed", "DeductibleAmtPaid",
		"totalCost", "claimDuration",
	}
	for _, slot := range types.PhysicianSlots {
		cols = append(cols, slot.Column)
	}
	for _, slot := range types.CodeSlots {
		cols = append(cols, slot.Column)
	}
	return cols
}

func WriteClaimRows(path string, rows []types.ClaimRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			r.ID, r.ProviderID, r.BeneficiaryID,
			formatDate(r.StartDate), formatDate(r.EndDate),
			formatDate(r.AdmissionDate), formatDate(r.DischargeDate),
			formatFloat(r.Reimbursed), formatFloat(r.Deductible),
			formatFloat(r.TotalCost), formatOptInt(r.DurationDays),
		}
		for _, slot := range types.PhysicianSlots {
			row = append(row, r.PhysicianFor(slot.Role))
		}
		diagIdx, procIdx := 0, 0
		for _, slot := range types.CodeSlots {
			switch slot.Type {
			case types.CodeDiagnosis:
				if diagIdx < len(r.DiagnosisCodes) {
					row = append(row, r.DiagnosisCodes[diagIdx])
				} else {
					row = append(row, "")
				}
				diagIdx++
			default:
				if procIdx < len(r.ProcedureCodes) {
					row = append(row, r.ProcedureCodes[procIdx])
				} else {
					row = append(row, "")
				}
				procIdx++
			}
		}
		out = append(out, row)
	}
	return writeCSV(path, claimColumns(), out)
}

// ReadClaimRows parses a cleaned claims file. The claim type discriminator
// is not stored; the caller stamps it when merging sources.
func ReadClaimRows(path string) ([]types.ClaimRow, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	rows := make([]types.ClaimRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		r := types.ClaimRow{
			ID:            cells["ClaimID"],
			ProviderID:    cells["Provider"],
			BeneficiaryID: cells["BeneID"],
			StartDate:     parseDateCell(cells["ClaimStartDt"]),
			EndDate:       parseDateCell(cells["ClaimEndDt"]),
			AdmissionDate: parseDateCell(cells["AdmissionDt"]),
			DischargeDate: parseDateCell(cells["DischargeDt"]),
			Reimbursed:    parseFloatCell(cells["InscClaimAmtReimbursed"]),
			Deductible:    parseFloatCell(cells["DeductibleAmtPaid"]),
			TotalCost:     parseFloatCell(cells["totalCost"]),
			DurationDays:  parseOptIntCell(cells["claimDuration"]),
			Attending:     cells["AttendingPhysician"],
			Operating:     cells["OperatingPhysician"],
			Other:         cells["OtherPhysician"],
		}
		for _, slot := range types.CodeSlots {
			code := cells[slot.Column]
			if code == "" {
				continue
			}
			if slot.Type == types.CodeDiagnosis {
				r.DiagnosisCodes = append(r.DiagnosisCodes, code)
			} else {
				r.ProcedureCodes = append(r.ProcedureCodes, code)
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}
