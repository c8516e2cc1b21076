package types

// NodeKind enumerates the node labels of the claims graph. AllNodeKinds is
// the load order: edges resolve their endpoints by key, so every node label
// loads before any relationship does.
type NodeKind string

const (
	NodeProvider    NodeKind = "Provider"
	NodeBeneficiary NodeKind = "Beneficiary"
	NodeClaim       NodeKind = "Claim"
	NodePhysician   NodeKind = "Physician"
	NodeMedicalCode NodeKind = "MedicalCode"
)

var AllNodeKinds = []NodeKind{
	NodeProvider,
	NodeBeneficiary,
	NodeClaim,
	NodePhysician,
	NodeMedicalCode,
}

func (k NodeKind) Label() string { return string(k) }

// KeyProperty is the uniquely-constrained property of the kind.
func (k NodeKind) KeyProperty() string {
	if k == NodeMedicalCode {
		return "code"
	}
	return "id"
}

type EdgeKind string

const (
	EdgeFiled        EdgeKind = "FILED"
	EdgeHasClaim     EdgeKind = "HAS_CLAIM"
	EdgeAttendedBy   EdgeKind = "ATTENDED_BY"
	EdgeIncludesCode EdgeKind = "INCLUDES_CODE"
)

var AllEdgeKinds = []EdgeKind{
	EdgeFiled,
	EdgeHasClaim,
	EdgeAttendedBy,
	EdgeIncludesCode,
}

func (k EdgeKind) RelType() string { return string(k) }
