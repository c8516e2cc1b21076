package graph

import (
	"time"

	"github.com/medwatch/claimgraph/internal/types"
)

// Every write the loader performs comes out of these two tables: one
// UNWIND statement per node kind and one per edge kind, each paired with
// the builder that turns the in-memory set into its $records parameter.
// MERGE on the kind's key property makes a replayed batch converge on the
// same graph instead of duplicating it.

type nodeStatement struct {
	cypher  string
	records func(set *types.NodeSet) []map[string]any
}

type edgeStatement struct {
	cypher  string
	records func(set *types.EdgeSet) []map[string]any
}

var nodeStatements = map[types.NodeKind]nodeStatement{
	types.NodeProvider: {
		cypher: `
UNWIND $records AS record
MERGE (p:Provider {id: record.id})
SET p.isFraud = record.isFraud
`,
		records: providerRecords,
	},
	types.NodeBeneficiary: {
		cypher: `
UNWIND $records AS record
MERGE (b:Beneficiary {id: record.id})
SET b += record.props
`,
		records: beneficiaryRecords,
	},
	types.NodeClaim: {
		cypher: `
UNWIND $records AS record
MERGE (c:Claim {id: record.id})
SET c += record.props
`,
		records: claimRecords,
	},
	types.NodePhysician: {
		cypher: `
UNWIND $records AS record
MERGE (p:Physician {id: record.id})
`,
		records: physicianRecords,
	},
	types.NodeMedicalCode: {
		cypher: `
UNWIND $records AS record
MERGE (m:MedicalCode {code: record.code})
SET m.type = record.type
`,
		records: medicalCodeRecords,
	},
}

var edgeStatements = map[types.EdgeKind]edgeStatement{
	types.EdgeFiled: {
		cypher: `
UNWIND $records AS record
MATCH (p:Provider {id: record.provider_id})
MATCH (c:Claim {id: record.claim_id})
MERGE (p)-[:FILED]->(c)
`,
		records: filedRecords,
	},
	types.EdgeHasClaim: {
		cypher: `
UNWIND $records AS record
MATCH (b:Beneficiary {id: record.beneficiary_id})
MATCH (c:Claim {id: record.claim_id})
MERGE (b)-[:HAS_CLAIM]->(c)
`,
		records: hasClaimRecords,
	},
	// Role sits inside the MERGE pattern: a claim may legitimately reach the
	// same physician under two roles, and each (claim, physician, role)
	// triple is one edge.
	types.EdgeAttendedBy: {
		cypher: `
UNWIND $records AS record
MATCH (c:Claim {id: record.claim_id})
MATCH (p:Physician {id: record.physician_id})
MERGE (c)-[:ATTENDED_BY {role: record.role}]->(p)
`,
		records: attendedByRecords,
	},
	types.EdgeIncludesCode: {
		cypher: `
UNWIND $records AS record
MATCH (c:Claim {id: record.claim_id})
MATCH (m:MedicalCode {code: record.code})
MERGE (c)-[:INCLUDES_CODE]->(m)
`,
		records: includesCodeRecords,
	},
}

// NodeStatement exposes the write statement for one node kind.
func NodeStatement(kind types.NodeKind) (string, bool) {
	stmt, ok := nodeStatements[kind]
	return stmt.cypher, ok
}

func EdgeStatement(kind types.EdgeKind) (string, bool) {
	stmt, ok := edgeStatements[kind]
	return stmt.cypher, ok
}

// NodeRecords builds the $records parameter for one node kind.
func NodeRecords(kind types.NodeKind, set *types.NodeSet) []map[string]any {
	stmt, ok := nodeStatements[kind]
	if !ok || set == nil {
		return nil
	}
	return stmt.records(set)
}

func EdgeRecords(kind types.EdgeKind, set *types.EdgeSet) []map[string]any {
	stmt, ok := edgeStatements[kind]
	if !ok || set == nil {
		return nil
	}
	return stmt.records(set)
}

func providerRecords(set *types.NodeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.Providers))
	for _, n := range set.Providers {
		out = append(out, map[string]any{
			"id":      n.ID,
			"isFraud": n.IsFraud,
		})
	}
	return out
}

func beneficiaryRecords(set *types.NodeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.Beneficiaries))
	for _, n := range set.Beneficiaries {
		props := map[string]any{
			"state":      n.State,
			"county":     n.County,
			"gender":     n.Gender,
			"race":       n.Race,
			"isDeceased": n.IsDeceased,
		}
		if n.Age != nil {
			props["age"] = int64(*n.Age)
		}
		for column, present := range n.Conditions {
			props[column] = present
		}
		out = append(out, map[string]any{
			"id":    n.ID,
			"props": props,
		})
	}
	return out
}

func claimRecords(set *types.NodeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.Claims))
	for _, n := range set.Claims {
		props := map[string]any{
			"type":             string(n.Type),
			"totalCost":        n.TotalCost,
			"reimbursedAmount": n.Reimbursed,
			"deductibleAmount": n.Deductible,
		}
		putDate(props, "claimStartDate", n.StartDate)
		putDate(props, "claimEndDate", n.EndDate)
		putDate(props, "admissionDate", n.AdmissionDate)
		putDate(props, "dischargeDate", n.DischargeDate)
		out = append(out, map[string]any{
			"id":    n.ID,
			"props": props,
		})
	}
	return out
}

func physicianRecords(set *types.NodeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.Physicians))
	for _, n := range set.Physicians {
		out = append(out, map[string]any{"id": n.ID})
	}
	return out
}

func medicalCodeRecords(set *types.NodeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.Codes))
	for _, n := range set.Codes {
		out = append(out, map[string]any{
			"code": n.Code,
			"type": string(n.Type),
		})
	}
	return out
}

func filedRecords(set *types.EdgeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.Filed))
	for _, e := range set.Filed {
		out = append(out, map[string]any{
			"provider_id": e.ProviderID,
			"claim_id":    e.ClaimID,
		})
	}
	return out
}

func hasClaimRecords(set *types.EdgeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.HasClaim))
	for _, e := range set.HasClaim {
		out = append(out, map[string]any{
			"beneficiary_id": e.BeneficiaryID,
			"claim_id":       e.ClaimID,
		})
	}
	return out
}

func attendedByRecords(set *types.EdgeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.AttendedBy))
	for _, e := range set.AttendedBy {
		out = append(out, map[string]any{
			"claim_id":     e.ClaimID,
			"physician_id": e.PhysicianID,
			"role":         string(e.Role),
		})
	}
	return out
}

func includesCodeRecords(set *types.EdgeSet) []map[string]any {
	out := make([]map[string]any, 0, len(set.Includes))
	for _, e := range set.Includes {
		out = append(out, map[string]any{
			"claim_id": e.ClaimID,
			"code":     e.Code,
		})
	}
	return out
}

// putDate stores a date property as an ISO day string, leaving the property
// absent when the source value was null.
func putDate(props map[string]any, key string, t *time.Time) {
	if t == nil {
		return
	}
	props[key] = t.Format("2006-01-02")
}
