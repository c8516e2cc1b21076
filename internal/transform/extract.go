package transform

import (
	"sort"

	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/types"
)

// MergeClaims unions the two claims sources and stamps the type
// discriminator on each row.
func MergeClaims(inpatient, outpatient []types.ClaimRow) []types.ClaimRow {
	merged := make([]types.ClaimRow, 0, len(inpatient)+len(outpatient))
	for _, row := range inpatient {
		row.Type = types.ClaimInpatient
		merged = append(merged, row)
	}
	for _, row := range outpatient {
		row.Type = types.ClaimOutpatient
		merged = append(merged, row)
	}
	return merged
}

// ExtractSummary carries the extraction subtotals reporting consumes.
type ExtractSummary struct {
	FraudProviders    int
	LegitProviders    int
	CodeTypeConflicts int
}

// ExtractNodes projects cleaned rows into deduplicated node sets, sorted by
// key so repeated runs produce identical output. Physicians are synthesized
// from the three role columns across all claims; medical codes from the
// diagnosis and procedure column families, diagnosis pass first so a code
// seen under both families keeps the Diagnosis tag and counts as a
// conflict.
func ExtractNodes(
	providers []types.ProviderRow,
	beneficiaries []types.BeneficiaryRow,
	claims []types.ClaimRow,
	log *logger.Logger,
) (*types.NodeSet, ExtractSummary) {
	set := &types.NodeSet{}
	summary := ExtractSummary{}

	providerByID := make(map[string]types.ProviderNode, len(providers))
	for _, row := range providers {
		if row.ID == "" {
			continue
		}
		providerByID[row.ID] = types.ProviderNode{ID: row.ID, IsFraud: row.IsFraud}
	}
	set.Providers = make([]types.ProviderNode, 0, len(providerByID))
	for _, node := range providerByID {
		set.Providers = append(set.Providers, node)
	}
	sort.Slice(set.Providers, func(i, j int) bool { return set.Providers[i].ID < set.Providers[j].ID })
	for _, node := range set.Providers {
		if node.IsFraud {
			summary.FraudProviders++
		} else {
			summary.LegitProviders++
		}
	}

	beneficiaryByID := make(map[string]types.BeneficiaryNode, len(beneficiaries))
	for _, row := range beneficiaries {
		if row.ID == "" {
			continue
		}
		beneficiaryByID[row.ID] = types.BeneficiaryNode{
			ID:         row.ID,
			Age:        row.Age,
			State:      row.State,
			County:     row.County,
			Gender:     row.Gender,
			Race:       row.Race,
			IsDeceased: row.IsDeceased,
			Conditions: row.Conditions,
		}
	}
	set.Beneficiaries = make([]types.BeneficiaryNode, 0, len(beneficiaryByID))
	for _, node := range beneficiaryByID {
		set.Beneficiaries = append(set.Beneficiaries, node)
	}
	sort.Slice(set.Beneficiaries, func(i, j int) bool { return set.Beneficiaries[i].ID < set.Beneficiaries[j].ID })

	claimByID := make(map[string]types.ClaimNode, len(claims))
	for _, row := range claims {
		if row.ID == "" {
			continue
		}
		claimByID[row.ID] = types.ClaimNode{
			ID:            row.ID,
			Type:          row.Type,
			TotalCost:     row.TotalCost,
			Reimbursed:    row.Reimbursed,
			Deductible:    row.Deductible,
			StartDate:     row.StartDate,
			EndDate:       row.EndDate,
			AdmissionDate: row.AdmissionDate,
			DischargeDate: row.DischargeDate,
		}
	}
	set.Claims = make([]types.ClaimNode, 0, len(claimByID))
	for _, node := range claimByID {
		set.Claims = append(set.Claims, node)
	}
	sort.Slice(set.Claims, func(i, j int) bool { return set.Claims[i].ID < set.Claims[j].ID })

	physicianIDs := map[string]struct{}{}
	for i := range claims {
		for _, slot := range types.PhysicianSlots {
			if id := claims[i].PhysicianFor(slot.Role); id != "" {
				physicianIDs[id] = struct{}{}
			}
		}
	}
	set.Physicians = make([]types.PhysicianNode, 0, len(physicianIDs))
	for id := range physicianIDs {
		set.Physicians = append(set.Physicians, types.PhysicianNode{ID: id})
	}
	sort.Slice(set.Physicians, func(i, j int) bool { return set.Physicians[i].ID < set.Physicians[j].ID })

	codeTypes := map[string]types.CodeType{}
	register := func(code string, ct types.CodeType) {
		existing, ok := codeTypes[code]
		if !ok {
			codeTypes[code] = ct
			return
		}
		if existing != ct {
			summary.CodeTypeConflicts++
		}
	}
	for i := range claims {
		for _, code := range claims[i].DiagnosisCodes {
			register(code, types.CodeDiagnosis)
		}
	}
	for i := range claims {
		for _, code := range claims[i].ProcedureCodes {
			register(code, types.CodeProcedure)
		}
	}
	set.Codes = make([]types.MedicalCodeNode, 0, len(codeTypes))
	for code, ct := range codeTypes {
		set.Codes = append(set.Codes, types.MedicalCodeNode{Code: code, Type: ct})
	}
	sort.Slice(set.Codes, func(i, j int) bool { return set.Codes[i].Code < set.Codes[j].Code })

	log.Info("extracted node sets",
		"providers", len(set.Providers),
		"fraud_providers", summary.FraudProviders,
		"beneficiaries", len(set.Beneficiaries),
		"claims", len(set.Claims),
		"physicians", len(set.Physicians),
		"medical_codes", len(set.Codes),
		"code_type_conflicts", summary.CodeTypeConflicts,
	)
	return set, summary
}
