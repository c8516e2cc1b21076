package types

type FiledEdge struct {
	ProviderID string
	ClaimID    string
}

type HasClaimEdge struct {
	BeneficiaryID string
	ClaimID       string
}

type AttendedByEdge struct {
	ClaimID     string
	PhysicianID string
	Role        PhysicianRole
}

type IncludesCodeEdge struct {
	ClaimID string
	Code    string
	Type    CodeType
}

type EdgeSet struct {
	Filed      []FiledEdge
	HasClaim   []HasClaimEdge
	AttendedBy []AttendedByEdge
	Includes   []IncludesCodeEdge
}

func (s *EdgeSet) Count(kind EdgeKind) int {
	switch kind {
	case EdgeFiled:
		return len(s.Filed)
	case EdgeHasClaim:
		return len(s.HasClaim)
	case EdgeAttendedBy:
		return len(s.AttendedBy)
	case EdgeIncludesCode:
		return len(s.Includes)
	default:
		return 0
	}
}

func (s *EdgeSet) Total() int {
	total := 0
	for _, kind := range AllEdgeKinds {
		total += s.Count(kind)
	}
	return total
}
