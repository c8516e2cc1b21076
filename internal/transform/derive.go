package transform

import (
	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/types"
)

// DeriveEdges expands the merged claim rows into the four relationship
// sets. FILED and HAS_CLAIM emit one edge per claim row; the wide physician
// and code slot families emit one edge per non-null slot. Rows with a
// missing key component are excluded rather than emitted half-formed; no
// cross-row deduplication happens here, duplicate detection is the
// validator's job after load.
func DeriveEdges(claims []types.ClaimRow, log *logger.Logger) *types.EdgeSet {
	set := &types.EdgeSet{}
	for i := range claims {
		row := &claims[i]
		if row.ID == "" {
			continue
		}
		if row.ProviderID != "" {
			set.Filed = append(set.Filed, types.FiledEdge{
				ProviderID: row.ProviderID,
				ClaimID:    row.ID,
			})
		}
		if row.BeneficiaryID != "" {
			set.HasClaim = append(set.HasClaim, types.HasClaimEdge{
				BeneficiaryID: row.BeneficiaryID,
				ClaimID:       row.ID,
			})
		}
		for _, slot := range types.PhysicianSlots {
			if id := row.PhysicianFor(slot.Role); id != "" {
				set.AttendedBy = append(set.AttendedBy, types.AttendedByEdge{
					ClaimID:     row.ID,
					PhysicianID: id,
					Role:        slot.Role,
				})
			}
		}
		for _, code := range row.DiagnosisCodes {
			set.Includes = append(set.Includes, types.IncludesCodeEdge{
				ClaimID: row.ID,
				Code:    code,
				Type:    types.CodeDiagnosis,
			})
		}
		for _, code := range row.ProcedureCodes {
			set.Includes = append(set.Includes, types.IncludesCodeEdge{
				ClaimID: row.ID,
				Code:    code,
				Type:    types.CodeProcedure,
			})
		}
	}

	log.Info("derived relationship sets",
		"filed", len(set.Filed),
		"has_claim", len(set.HasClaim),
		"attended_by", len(set.AttendedBy),
		"includes_code", len(set.Includes),
	)
	return set
}
