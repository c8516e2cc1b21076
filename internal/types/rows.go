package types

import (
	"fmt"
	"time"
)

type ClaimType string

const (
	ClaimInpatient  ClaimType = "Inpatient"
	ClaimOutpatient ClaimType = "Outpatient"
)

type CodeType string

const (
	CodeDiagnosis CodeType = "Diagnosis"
	CodeProcedure CodeType = "Procedure"
)

type PhysicianRole string

const (
	RoleAttending PhysicianRole = "Attending"
	RoleOperating PhysicianRole = "Operating"
	RoleOther     PhysicianRole = "Other"
)

type ProviderRow struct {
	ID      string
	IsFraud bool
}

// BeneficiaryRow is a cleaned beneficiary record. Conditions holds the
// chronic-condition indicators keyed by source column name, normalized to
// booleans during cleansing.
type BeneficiaryRow struct {
	ID         string
	Age        *int
	State      string
	County     string
	Gender     string
	Race       string
	IsDeceased bool
	Conditions map[string]bool
}

// ClaimRow is a cleaned claim record from either claims source. Type is
// stamped when inpatient and outpatient rows are merged.
type ClaimRow struct {
	ID             string
	ProviderID     string
	BeneficiaryID  string
	Type           ClaimType
	StartDate      *time.Time
	EndDate        *time.Time
	AdmissionDate  *time.Time
	DischargeDate  *time.Time
	Reimbursed     float64
	Deductible     float64
	TotalCost      float64
	DurationDays   *int
	Attending      string
	Operating      string
	Other          string
	DiagnosisCodes []string
	ProcedureCodes []string
}

func (r *ClaimRow) PhysicianFor(role PhysicianRole) string {
	switch role {
	case RoleAttending:
		return r.Attending
	case RoleOperating:
		return r.Operating
	case RoleOther:
		return r.Other
	default:
		return ""
	}
}

func (r *ClaimRow) CodesFor(ct CodeType) []string {
	if ct == CodeDiagnosis {
		return r.DiagnosisCodes
	}
	return r.ProcedureCodes
}

// PhysicianSlot binds a wide physician column to the role its edges carry.
type PhysicianSlot struct {
	Column string
	Role   PhysicianRole
}

var PhysicianSlots = []PhysicianSlot{
	{Column: "AttendingPhysician", Role: RoleAttending},
	{Column: "OperatingPhysician", Role: RoleOperating},
	{Column: "OtherPhysician", Role: RoleOther},
}

// CodeSlot binds a wide code column to the code type its values carry.
type CodeSlot struct {
	Column string
	Type   CodeType
}

// CodeSlots lists the 10 diagnosis and 6 procedure columns. Diagnosis slots
// come first; a code seen under both families keeps the first type.
var CodeSlots = buildCodeSlots()

func buildCodeSlots() []CodeSlot {
	slots := make([]CodeSlot, 0, 16)
	for i := 1; i <= 10; i++ {
		slots = append(slots, CodeSlot{Column: fmt.Sprintf("ClmDiagnosisCode_%d", i), Type: CodeDiagnosis})
	}
	for i := 1; i <= 6; i++ {
		slots = append(slots, CodeSlot{Column: fmt.Sprintf("ClmProcedureCode_%d", i), Type: CodeProcedure})
	}
	return slots
}
