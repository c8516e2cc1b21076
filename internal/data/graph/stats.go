package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/platform/neo4jdb"
	"github.com/medwatch/claimgraph/internal/types"
)

const (
	claimStatsCypher = `
MATCH (c:Claim)
RETURN count(c) AS total,
       sum(CASE WHEN c.type = 'Inpatient' THEN 1 ELSE 0 END) AS inpatient,
       sum(CASE WHEN c.type = 'Outpatient' THEN 1 ELSE 0 END) AS outpatient,
       sum(c.totalCost) AS total_cost,
       avg(c.totalCost) AS avg_cost,
       min(c.totalCost) AS min_cost,
       max(c.totalCost) AS max_cost`

	fraudClaimStatsCypher = `
MATCH (p:Provider)-[:FILED]->(c:Claim)
WHERE p.isFraud
RETURN count(c) AS total,
       sum(c.totalCost) AS total_cost,
       avg(c.totalCost) AS avg_cost,
       max(c.totalCost) AS max_cost`

	beneficiaryStatsCypher = `
MATCH (b:Beneficiary)
RETURN count(b) AS total,
       sum(CASE WHEN b.isDeceased THEN 1 ELSE 0 END) AS deceased,
       avg(b.age) AS avg_age,
       min(b.age) AS min_age,
       max(b.age) AS max_age`

	physicianClaimStatsCypher = `
MATCH (p:Physician)<-[:ATTENDED_BY]-(c:Claim)
WITH p, count(c) AS claims
RETURN count(p) AS with_claims,
       avg(claims) AS avg_claims,
       max(claims) AS max_claims`

	medicalCodeStatsCypher = `
MATCH (m:MedicalCode)
RETURN count(m) AS total,
       sum(CASE WHEN m.type = 'Diagnosis' THEN 1 ELSE 0 END) AS diagnosis_codes,
       sum(CASE WHEN m.type = 'Procedure' THEN 1 ELSE 0 END) AS procedure_codes`
)

// Statistics is one consistent snapshot of the loaded graph, read in a
// single transaction and rendered into the statistics report.
type Statistics struct {
	NodeCounts map[types.NodeKind]int64
	EdgeCounts map[types.EdgeKind]int64

	Providers      int64
	FraudProviders int64

	Claims           int64
	InpatientClaims  int64
	OutpatientClaims int64
	TotalCost        float64
	AvgCost          float64
	MinCost          float64
	MaxCost          float64

	FraudClaims    int64
	FraudTotalCost float64
	FraudAvgCost   float64
	FraudMaxCost   float64

	Beneficiaries         int64
	DeceasedBeneficiaries int64
	AvgAge                float64
	MinAge                int64
	MaxAge                int64

	Physicians            int64
	PhysiciansWithClaims  int64
	AvgClaimsPerPhysician float64
	MaxClaimsPerPhysician int64

	MedicalCodes   int64
	DiagnosisCodes int64
	ProcedureCodes int64

	OrphanClaimsNoProvider    int64
	OrphanClaimsNoBeneficiary int64
	DuplicateFiled            int64
}

func (s *Statistics) TotalNodes() int64 {
	var total int64
	for _, n := range s.NodeCounts {
		total += n
	}
	return total
}

func (s *Statistics) TotalEdges() int64 {
	var total int64
	for _, n := range s.EdgeCounts {
		total += n
	}
	return total
}

func (s *Statistics) LegitProviders() int64 {
	return s.Providers - s.FraudProviders
}

// FraudRate is the share of providers flagged fraudulent, in percent.
func (s *Statistics) FraudRate() float64 {
	if s.Providers == 0 {
		return 0
	}
	return float64(s.FraudProviders) / float64(s.Providers) * 100
}

// FraudClaimShare is the share of claims filed by fraud providers, in
// percent.
func (s *Statistics) FraudClaimShare() float64 {
	if s.Claims == 0 {
		return 0
	}
	return float64(s.FraudClaims) / float64(s.Claims) * 100
}

// CollectStatistics reads the figures behind every section of the
// statistics report in one read transaction.
func CollectStatistics(ctx context.Context, client *neo4jdb.Client, log *logger.Logger) (*Statistics, error) {
	session := client.ReadSession(ctx)
	defer session.Close(ctx)

	qctx, cancel := context.WithTimeout(ctx, client.QueryTimeout)
	defer cancel()

	out, err := session.ExecuteRead(qctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collectStatistics(qctx, tx)
	})
	if err != nil {
		return nil, neo4jdb.OpErr("collect statistics", neo4jdb.OperationErrorRead, "", err)
	}

	stats := out.(*Statistics)
	log.Info("statistics collected",
		"nodes", stats.TotalNodes(),
		"relationships", stats.TotalEdges(),
	)
	return stats, nil
}

func collectStatistics(ctx context.Context, tx neo4j.ManagedTransaction) (*Statistics, error) {
	stats := &Statistics{
		NodeCounts: make(map[types.NodeKind]int64, len(types.AllNodeKinds)),
		EdgeCounts: make(map[types.EdgeKind]int64, len(types.AllEdgeKinds)),
	}

	for _, kind := range types.AllNodeKinds {
		n, err := readCount(ctx, tx, fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", kind.Label()), nil)
		if err != nil {
			return nil, err
		}
		stats.NodeCounts[kind] = n
	}
	for _, kind := range types.AllEdgeKinds {
		n, err := readCount(ctx, tx, fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r) AS count", kind.RelType()), nil)
		if err != nil {
			return nil, err
		}
		stats.EdgeCounts[kind] = n
	}

	providers, err := readSingle(ctx, tx, providerSplitCypher, nil)
	if err != nil {
		return nil, err
	}
	stats.Providers = recInt(providers, "total")
	stats.FraudProviders = recInt(providers, "fraud")

	claims, err := readSingle(ctx, tx, claimStatsCypher, nil)
	if err != nil {
		return nil, err
	}
	stats.Claims = recInt(claims, "total")
	stats.InpatientClaims = recInt(claims, "inpatient")
	stats.OutpatientClaims = recInt(claims, "outpatient")
	stats.TotalCost = recFloat(claims, "total_cost")
	stats.AvgCost = recFloat(claims, "avg_cost")
	stats.MinCost = recFloat(claims, "min_cost")
	stats.MaxCost = recFloat(claims, "max_cost")

	fraudClaims, err := readSingle(ctx, tx, fraudClaimStatsCypher, nil)
	if err != nil {
		return nil, err
	}
	stats.FraudClaims = recInt(fraudClaims, "total")
	stats.FraudTotalCost = recFloat(fraudClaims, "total_cost")
	stats.FraudAvgCost = recFloat(fraudClaims, "avg_cost")
	stats.FraudMaxCost = recFloat(fraudClaims, "max_cost")

	beneficiaries, err := readSingle(ctx, tx, beneficiaryStatsCypher, nil)
	if err != nil {
		return nil, err
	}
	stats.Beneficiaries = recInt(beneficiaries, "total")
	stats.DeceasedBeneficiaries = recInt(beneficiaries, "deceased")
	stats.AvgAge = recFloat(beneficiaries, "avg_age")
	stats.MinAge = recInt(beneficiaries, "min_age")
	stats.MaxAge = recInt(beneficiaries, "max_age")

	stats.Physicians = stats.NodeCounts[types.NodePhysician]
	physicians, err := readSingle(ctx, tx, physicianClaimStatsCypher, nil)
	if err != nil {
		return nil, err
	}
	stats.PhysiciansWithClaims = recInt(physicians, "with_claims")
	stats.AvgClaimsPerPhysician = recFloat(physicians, "avg_claims")
	stats.MaxClaimsPerPhysician = recInt(physicians, "max_claims")

	codes, err := readSingle(ctx, tx, medicalCodeStatsCypher, nil)
	if err != nil {
		return nil, err
	}
	stats.MedicalCodes = recInt(codes, "total")
	stats.DiagnosisCodes = recInt(codes, "diagnosis_codes")
	stats.ProcedureCodes = recInt(codes, "procedure_codes")

	if stats.OrphanClaimsNoProvider, err = readCount(ctx, tx, orphanNoProviderCypher, nil); err != nil {
		return nil, err
	}
	if stats.OrphanClaimsNoBeneficiary, err = readCount(ctx, tx, orphanNoBeneficiaryCypher, nil); err != nil {
		return nil, err
	}
	if stats.DuplicateFiled, err = readCount(ctx, tx, duplicateEdgeChecks[types.EdgeFiled], nil); err != nil {
		return nil, err
	}

	return stats, nil
}
