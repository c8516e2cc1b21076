package dataset

import (
	"errors"
	"os"

	"github.com/medwatch/claimgraph/internal/types"
)

// WriteEdgeSet materializes one CSV per edge kind under processed/.
func WriteEdgeSet(paths Paths, set *types.EdgeSet) error {
	filed := make([][]string, 0, len(set.Filed))
	for _, e := range set.Filed {
		filed = append(filed, []string{e.ProviderID, e.ClaimID})
	}
	if err := writeCSV(paths.Processed(FiledEdgesFile), []string{"provider_id", "claim_id"}, filed); err != nil {
		return err
	}

	hasClaim := make([][]string, 0, len(set.HasClaim))
	for _, e := range set.HasClaim {
		hasClaim = append(hasClaim, []string{e.BeneficiaryID, e.ClaimID})
	}
	if err := writeCSV(paths.Processed(HasClaimEdgesFile), []string{"beneficiary_id", "claim_id"}, hasClaim); err != nil {
		return err
	}

	attended := make([][]string, 0, len(set.AttendedBy))
	for _, e := range set.AttendedBy {
		attended = append(attended, []string{e.ClaimID, e.PhysicianID, string(e.Role)})
	}
	if err := writeCSV(paths.Processed(AttendedByEdgesFile), []string{"claim_id", "physician_id", "role"}, attended); err != nil {
		return err
	}

	includes := make([][]string, 0, len(set.Includes))
	for _, e := range set.Includes {
		includes = append(includes, []string{e.ClaimID, e.Code, string(e.Type)})
	}
	return writeCSV(paths.Processed(IncludesCodeEdgesFile), []string{"claim_id", "code", "code_type"}, includes)
}

// ReadEdgeSet loads whichever edge files exist; missing files are returned
// by name and contribute zero edges.
func ReadEdgeSet(paths Paths) (*types.EdgeSet, []string, error) {
	set := &types.EdgeSet{}
	var missing []string

	table, err := ReadTable(paths.Processed(FiledEdgesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, FiledEdgesFile)
	case err != nil:
		return nil, nil, err
	default:
		for _, cells := range table.Rows {
			set.Filed = append(set.Filed, types.FiledEdge{
				ProviderID: cells["provider_id"],
				ClaimID:    cells["claim_id"],
			})
		}
	}

	table, err = ReadTable(paths.Processed(HasClaimEdgesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, HasClaimEdgesFile)
	case err != nil:
		return nil, nil, err
	default:
		for _, cells := range table.Rows {
			set.HasClaim = append(set.HasClaim, types.HasClaimEdge{
				BeneficiaryID: cells["beneficiary_id"],
				ClaimID:       cells["claim_id"],
			})
		}
	}

	table, err = ReadTable(paths.Processed(AttendedByEdgesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, AttendedByEdgesFile)
	case err != nil:
		return nil, nil, err
	default:
		for _, cells := range table.Rows {
			set.AttendedBy = append(set.AttendedBy, types.AttendedByEdge{
				ClaimID:     cells["claim_id"],
				PhysicianID: cells["physician_id"],
				Role:        types.PhysicianRole(cells["role"]),
			})
		}
	}

	table, err = ReadTable(paths.Processed(IncludesCodeEdgesFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		missing = append(missing, IncludesCodeEdgesFile)
	case err != nil:
		return nil, nil, err
	default:
		for _, cells := range table.Rows {
			set.Includes = append(set.Includes, types.IncludesCodeEdge{
				ClaimID: cells["claim_id"],
				Code:    cells["code"],
				Type:    types.CodeType(cells["code_type"]),
			})
		}
	}

	return set, missing, nil
}
