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
	orphanNoProviderCypher = `
MATCH (c:Claim)
WHERE NOT (c)<-[:FILED]-()
RETURN count(c) AS count`

	orphanNoBeneficiaryCypher = `
MATCH (c:Claim)
WHERE NOT (c)<-[:HAS_CLAIM]-()
RETURN count(c) AS count`

	costMismatchCypher = `
MATCH (c:Claim)
WHERE abs(c.totalCost - (c.reimbursedAmount + c.deductibleAmount)) > 0.01
RETURN count(c) AS count`

	providerSplitCypher = `
MATCH (p:Provider)
RETURN count(p) AS total,
       sum(CASE WHEN p.isFraud THEN 1 ELSE 0 END) AS fraud`

	beneficiarySplitCypher = `
MATCH (b:Beneficiary)
RETURN count(b) AS total,
       sum(CASE WHEN b.isDeceased THEN 1 ELSE 0 END) AS deceased`
)

// duplicateEdgeChecks count endpoint pairs carrying more than one edge of
// a kind. ATTENDED_BY groups by role as well, since the same physician may
// attend a claim under two roles without that being a duplicate.
var duplicateEdgeChecks = map[types.EdgeKind]string{
	types.EdgeFiled: `
MATCH (p:Provider)-[r:FILED]->(c:Claim)
WITH p, c, count(r) AS relCount
WHERE relCount > 1
RETURN count(*) AS count`,
	types.EdgeHasClaim: `
MATCH (b:Beneficiary)-[r:HAS_CLAIM]->(c:Claim)
WITH b, c, count(r) AS relCount
WHERE relCount > 1
RETURN count(*) AS count`,
	types.EdgeAttendedBy: `
MATCH (c:Claim)-[r:ATTENDED_BY]->(p:Physician)
WITH c, p, r.role AS role, count(r) AS relCount
WHERE relCount > 1
RETURN count(*) AS count`,
	types.EdgeIncludesCode: `
MATCH (c:Claim)-[r:INCLUDES_CODE]->(m:MedicalCode)
WITH c, m, count(r) AS relCount
WHERE relCount > 1
RETURN count(*) AS count`,
}

// ValidationReport carries the loaded graph's integrity counts. A zero
// value for every anomaly counter means the load is consistent with the
// model's invariants.
type ValidationReport struct {
	NodeCounts map[types.NodeKind]int64
	EdgeCounts map[types.EdgeKind]int64

	OrphanClaimsNoProvider    int64
	OrphanClaimsNoBeneficiary int64
	DuplicateEdges            map[types.EdgeKind]int64
	CostMismatches            int64

	Providers             int64
	FraudProviders        int64
	Beneficiaries         int64
	DeceasedBeneficiaries int64
}

func (r *ValidationReport) LegitProviders() int64 {
	return r.Providers - r.FraudProviders
}

func (r *ValidationReport) DuplicateTotal() int64 {
	var total int64
	for _, n := range r.DuplicateEdges {
		total += n
	}
	return total
}

// Anomalies is the sum of every integrity violation the report found.
func (r *ValidationReport) Anomalies() int64 {
	return r.OrphanClaimsNoProvider +
		r.OrphanClaimsNoBeneficiary +
		r.DuplicateTotal() +
		r.CostMismatches
}

func (r *ValidationReport) Healthy() bool {
	return r.Anomalies() == 0
}

// Validator checks the loaded graph against the model's invariants:
// every claim reaches a provider and a beneficiary, no endpoint pair
// carries duplicate edges, and claim costs add up.
type Validator struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewValidator(client *neo4jdb.Client, log *logger.Logger) *Validator {
	return &Validator{
		client: client,
		log:    log.With("component", "IntegrityValidator"),
	}
}

func (v *Validator) Run(ctx context.Context) (*ValidationReport, error) {
	session := v.client.ReadSession(ctx)
	defer session.Close(ctx)

	qctx, cancel := context.WithTimeout(ctx, v.client.QueryTimeout)
	defer cancel()

	out, err := session.ExecuteRead(qctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return v.collect(qctx, tx)
	})
	if err != nil {
		return nil, neo4jdb.OpErr("validate graph", neo4jdb.OperationErrorRead, "", err)
	}

	report := out.(*ValidationReport)
	v.logReport(report)
	return report, nil
}

func (v *Validator) collect(ctx context.Context, tx neo4j.ManagedTransaction) (*ValidationReport, error) {
	report := &ValidationReport{
		NodeCounts:     make(map[types.NodeKind]int64, len(types.AllNodeKinds)),
		EdgeCounts:     make(map[types.EdgeKind]int64, len(types.AllEdgeKinds)),
		DuplicateEdges: make(map[types.EdgeKind]int64, len(types.AllEdgeKinds)),
	}

	for _, kind := range types.AllNodeKinds {
		n, err := readCount(ctx, tx, fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", kind.Label()), nil)
		if err != nil {
			return nil, err
		}
		report.NodeCounts[kind] = n
	}
	for _, kind := range types.AllEdgeKinds {
		n, err := readCount(ctx, tx, fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r) AS count", kind.RelType()), nil)
		if err != nil {
			return nil, err
		}
		report.EdgeCounts[kind] = n
	}

	var err error
	if report.OrphanClaimsNoProvider, err = readCount(ctx, tx, orphanNoProviderCypher, nil); err != nil {
		return nil, err
	}
	if report.OrphanClaimsNoBeneficiary, err = readCount(ctx, tx, orphanNoBeneficiaryCypher, nil); err != nil {
		return nil, err
	}
	for _, kind := range types.AllEdgeKinds {
		n, err := readCount(ctx, tx, duplicateEdgeChecks[kind], nil)
		if err != nil {
			return nil, err
		}
		report.DuplicateEdges[kind] = n
	}
	if report.CostMismatches, err = readCount(ctx, tx, costMismatchCypher, nil); err != nil {
		return nil, err
	}

	providers, err := readSingle(ctx, tx, providerSplitCypher, nil)
	if err != nil {
		return nil, err
	}
	report.Providers = recInt(providers, "total")
	report.FraudProviders = recInt(providers, "fraud")

	beneficiaries, err := readSingle(ctx, tx, beneficiarySplitCypher, nil)
	if err != nil {
		return nil, err
	}
	report.Beneficiaries = recInt(beneficiaries, "total")
	report.DeceasedBeneficiaries = recInt(beneficiaries, "deceased")

	return report, nil
}

func (v *Validator) logReport(report *ValidationReport) {
	for _, kind := range types.AllNodeKinds {
		v.log.Info("node count", "label", kind.Label(), "count", report.NodeCounts[kind])
	}
	for _, kind := range types.AllEdgeKinds {
		v.log.Info("relationship count", "type", kind.RelType(), "count", report.EdgeCounts[kind])
	}
	v.log.Info("provider split",
		"total", report.Providers,
		"fraud", report.FraudProviders,
		"legit", report.LegitProviders(),
	)
	v.log.Info("beneficiary split",
		"total", report.Beneficiaries,
		"deceased", report.DeceasedBeneficiaries,
	)

	if report.Healthy() {
		v.log.Info("integrity checks passed",
			"orphans_no_provider", 0,
			"orphans_no_beneficiary", 0,
			"duplicate_edges", 0,
			"cost_mismatches", 0,
		)
		return
	}
	v.log.Warn("integrity anomalies found",
		"orphans_no_provider", report.OrphanClaimsNoProvider,
		"orphans_no_beneficiary", report.OrphanClaimsNoBeneficiary,
		"duplicate_edges", report.DuplicateTotal(),
		"cost_mismatches", report.CostMismatches,
		"total", report.Anomalies(),
	)
}
