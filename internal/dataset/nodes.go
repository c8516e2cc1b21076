package dataset

import (
	"errors"
	"os"

	"github.com/medwatch/claimgraph/internal/types"
)

var beneficiaryNodeFixedColumns = []string{"id", "age", "state", "county", "gender", "race", "isDeceased"}

// WriteNodeSet materializes one CSV per node kind under processed/.
func WriteNodeSet(paths Paths, set *types.NodeSet) error {
	providers := make([][]string, 0, len(set.Providers))
	for _, n := range set.Providers {
		providers = append(providers, []string{n.ID, formatBool(n.IsFraud)})
	}
	if err := writeCSV(paths.Processed(ProviderNodesFile), []string{"id", "isFraud"}, providers); err != nil {
		return err
	}

	conds := make([]map[string]bool, 0, len(set.Beneficiaries))
	for _, n := range set.Beneficiaries {
		conds = append(conds, n.Conditions)
	}
	condCols := conditionColumns(conds)
	header := append(append([]string{}, beneficiaryNodeFixedColumns...), condCols...)
	beneficiaries := make([][]string, 0, len(set.Beneficiaries))
	for _, n := range set.Beneficiaries {
		row := []string{
			n.ID, formatOptInt(n.Age), n.State, n.County, n.Gender, n.Race, formatBool(n.IsDeceased),
		}
		for _, col := range condCols {
			row = append(row, formatBool(n.Conditions[col]))
		}
		beneficiaries = append(beneficiaries, row)
	}
	if err := writeCSV(paths.Processed(BeneficiaryNodesFile), header, beneficiaries); err != nil {
		return err
	}

	claims := make([][]string, 0, len(set.Claims))
	for _, n := range set.Claims {
		claims = append(claims, []string{
			n.ID, string(n.Type),
			formatFloat(n.TotalCost), formatFloat(n.Reimbursed), formatFloat(n.Deductible),
			formatDate(n.StartDate), formatDate(n.EndDate),
			formatDate(n.AdmissionDate), formatDate(n.DischargeDate),
		})
	}
	claimHeader := []string{
		"id", "type", "totalCost", "reimbursedAmount", "deductibleAmount",
		"claimStartDate", "claimEndDate", "admissionDate", "dischargeDate",
	}
	if err := writeCSV(paths.Processed(ClaimNodesFile), claimHeader, claims); err != nil {
		return err
	}

	physicians := make([][]string, 0, len(set.Physicians))
	for _, n := range set.Physicians {
		physicians = append(physicians, []string{n.ID})
	}
	if err := writeCSV(paths.Processed(PhysicianNodesFile), []string{"id"}, physicians); err != nil {
		return err
	}

	codes := make([][]string, 0, len(set.Codes))
	for _, n := range set.Codes {
		codes = append(codes, []string{n.Code, string(n.Type)})
	}
	return writeCSV(paths.Processed(MedicalCodeNodesFile), []string{"code", "type"}, codes)
}

// ReadNodeSet loads whichever node files exist. Missing files are returned
// by name so the caller can report the skipped kinds; their slices stay
// empty.
func ReadNodeSet(paths Paths) (*types.NodeSet, []string, error) {
	set := &types.NodeSet{}
	var missing []string

	table, err := ReadTable(paths.Processed(ProviderNodesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, ProviderNodesFile)
	case err != nil:
		return nil, nil, err
	default:
		for _, cells := range table.Rows {
			set.Providers = append(set.Providers, types.ProviderNode{
				ID:      cells["id"],
				IsFraud: parseBoolCell(cells["isFraud"]),
			})
		}
	}

	table, err = ReadTable(paths.Processed(BeneficiaryNodesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, BeneficiaryNodesFile)
	case err != nil:
		return nil, nil, err
	default:
		fixed := map[string]struct{}{}
		for _, col := range beneficiaryNodeFixedColumns {
			fixed[col] = struct{}{}
		}
		var condCols []string
		for _, col := range table.Columns {
			if _, ok := fixed[col]; !ok {
				condCols = append(condCols, col)
			}
		}
		for _, cells := range table.Rows {
			n := types.BeneficiaryNode{
				ID:         cells["id"],
				Age:        parseOptIntCell(cells["age"]),
				State:      cells["state"],
				County:     cells["county"],
				Gender:     cells["gender"],
				Race:       cells["race"],
				IsDeceased: parseBoolCell(cells["isDeceased"]),
				Conditions: map[string]bool{},
			}
			for _, col := range condCols {
				n.Conditions[col] = parseBoolCell(cells[col])
			}
			set.Beneficiaries = append(set.Beneficiaries, n)
		}
	}

	table, err = ReadTable(paths.Processed(ClaimNodesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, ClaimNodesFile)
	case err != nil:
		return nil, nil, err
	default:
		for _, cells := range table.Rows {
			set.Claims = append(set.Claims, types.ClaimNode{
				ID:            cells["id"],
				Type:          types.ClaimType(cells["type"]),
				TotalCost:     parseFloatCell(cells["totalCost"]),
				Reimbursed:    parseFloatCell(cells["reimbursedAmount"]),
				Deductible:    parseFloatCell(cells["deductibleAmount"]),
				StartDate:     parseDateCell(cells["claimStartDate"]),
				EndDate:       parseDateCell(cells["claimEndDate"]),
				AdmissionDate: parseDateCell(cells["admissionDate"]),
				DischargeDate: parseDateCell(cells["dischargeDate"]),
			})
		}
	}

	table, err = ReadTable(paths.Processed(PhysicianNodesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, PhysicianNodesFile)
	case err != nil:
		return nil, nil, err
	default:
		for _, cells := range table.Rows {
			set.Physicians = append(set.Physicians, types.PhysicianNode{ID: cells["id"]})
		}
	}

	table, err = ReadTable(paths.Processed(MedicalCodeNodesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, MedicalCodeNodesFile)
	case err != nil:
		return nil, nil, err
	default:
		for _, cells := range table.Rows {
			set.Codes = append(set.Codes, types.MedicalCodeNode{
				Code: cells["code"],
				Type: types.CodeType(cells["type"]),
			})
		}
	}

	return set, missing, nil
}
