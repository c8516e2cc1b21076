package types

import "time"

type ProviderNode struct {
	ID      string
	IsFraud bool
}

type BeneficiaryNode struct {
	ID         string
	Age        *int
	State      string
	County     string
	Gender     string
	Race       string
	IsDeceased bool
	Conditions map[string]bool
}

type ClaimNode struct {
	ID            string
	Type          ClaimType
	TotalCost     float64
	Reimbursed    float64
	Deductible    float64
	StartDate     *time.Time
	EndDate       *time.Time
	AdmissionDate *time.Time
	DischargeDate *time.Time
}

type PhysicianNode struct {
	ID string
}

type MedicalCodeNode struct {
	Code string
	Type CodeType
}

// NodeSet holds the deduplicated, key-sorted node records of one
// transformation run.
type NodeSet struct {
	Providers     []ProviderNode
	Beneficiaries []BeneficiaryNode
	Claims        []ClaimNode
	Physicians    []PhysicianNode
	Codes         []MedicalCodeNode
}

func (s *NodeSet) Count(kind NodeKind) int {
	switch kind {
	case NodeProvider:
		return len(s.Providers)
	case NodeBeneficiary:
		return len(s.Beneficiaries)
	case NodeClaim:
		return len(s.Claims)
	case NodePhysician:
		return len(s.Physicians)
	case NodeMedicalCode:
		return len(s.Codes)
	default:
		return 0
	}
}

func (s *NodeSet) Total() int {
	total := 0
	for _, kind := range AllNodeKinds {
		total += s.Count(kind)
	}
	return total
}
