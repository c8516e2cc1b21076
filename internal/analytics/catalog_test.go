package analytics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func findQuery(t *testing.T, catalog *Catalog, slug string) Query {
	t.Helper()
	for _, q := range catalog.All() {
		if q.Slug == slug {
			return q
		}
	}
	t.Fatalf("catalog has no entry %s", slug)
	return Query{}
}

func TestEmbeddedCatalogLoads(t *testing.T) {
	catalog, err := loadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if catalog.Name != "fraud_patterns" {
		t.Fatalf("catalog name: want=fraud_patterns got=%s", catalog.Name)
	}
	if len(catalog.Queries) != 12 {
		t.Fatalf("fraud queries: want=12 got=%d", len(catalog.Queries))
	}
	if len(catalog.Aggregations) != 10 {
		t.Fatalf("aggregations: want=10 got=%d", len(catalog.Aggregations))
	}
	if catalog.Len() != 22 {
		t.Fatalf("total entries: want=22 got=%d", catalog.Len())
	}
}

func TestCatalogKeepsPatternThresholds(t *testing.T) {
	catalog, err := loadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	thresholds := map[string]string{
		"query_01_spider_web":          ">= 3",
		"query_04_diagnosis_clusters":  "> 50",
		"query_05_high_value_fraud":    "> 10000",
		"query_07_impossible_workload": "> 10",
		"query_11_repeat_offender":     "> 3",
		"query_12_elder_fraud":         "> 85",
	}
	for slug, marker := range thresholds {
		q := findQuery(t, catalog, slug)
		if !strings.Contains(q.Cypher, marker) {
			t.Fatalf("%s lost its threshold %q:\n%s", slug, marker, q.Cypher)
		}
	}

	if q := findQuery(t, catalog, "query_09_top_states_fraud"); !strings.Contains(q.Cypher, "LIMIT 5") {
		t.Fatalf("top states must keep its LIMIT 5:\n%s", q.Cypher)
	}
	if q := findQuery(t, catalog, "aggregation_05_fraud_claims_per_state"); !strings.Contains(q.Cypher, "b.state") {
		t.Fatalf("state aggregation must read the lowercase property:\n%s", q.Cypher)
	}
}

func TestCatalogUsesBooleanPredicates(t *testing.T) {
	catalog, err := loadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	for _, q := range catalog.All() {
		if strings.Contains(q.Cypher, "isFraud = 1") || strings.Contains(q.Cypher, "isFraud = 0") {
			t.Fatalf("%s still compares isFraud against an integer", q.Slug)
		}
		if strings.Contains(q.Cypher, "isDeceased = 1") {
			t.Fatalf("%s still compares isDeceased against an integer", q.Slug)
		}
	}
}

func TestCatalogEnvOverride(t *testing.T) {
	override := `
catalog: custom
version: 1
queries:
  - name: "Only Query"
    slug: only_query
    columns: [count]
    cypher: |
      MATCH (n) RETURN count(n) AS count
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	t.Setenv(catalogEnv, path)

	catalog, err := loadCatalog()
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if catalog.Name != "custom" || catalog.Len() != 1 {
		t.Fatalf("override not honored: name=%s entries=%d", catalog.Name, catalog.Len())
	}
}

func TestCatalogValidationRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"duplicate slug": `
catalog: c
queries:
  - {name: A, slug: same_slug, columns: [x], cypher: "RETURN 1 AS x"}
  - {name: B, slug: same_slug, columns: [x], cypher: "RETURN 1 AS x"}
`,
		"empty cypher": `
catalog: c
queries:
  - {name: A, slug: a_query, columns: [x], cypher: ""}
`,
		"missing columns": `
catalog: c
queries:
  - {name: A, slug: a_query, cypher: "RETURN 1 AS x"}
`,
		"slug not snake case": `
catalog: c
queries:
  - {name: A, slug: "Bad-Slug", columns: [x], cypher: "RETURN 1 AS x"}
`,
		"no queries": `
catalog: c
queries: []
`,
	}
	for name, doc := range cases {
		if _, err := parseCatalog([]byte(doc)); err == nil {
			t.Fatalf("%s: validation should have failed", name)
		}
	}
}
