package analytics

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// The fraud query catalog ships embedded in the binary. Operators can
// point this env var at an alternate YAML to swap thresholds or add
// patterns without rebuilding.
const catalogEnv = "FRAUD_QUERY_CATALOG_YAML"

//go:embed queries.yaml
var catalogFS embed.FS

// Query is one read-only analytic statement. Columns declares the result
// header in order; the runner projects each record onto it.
type Query struct {
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	Columns     []string `yaml:"columns"`
	Cypher      string   `yaml:"cypher"`
}

// Catalog holds the twelve fraud pattern queries and the ten aggregation
// operations, in execution order.
type Catalog struct {
	Name         string  `yaml:"catalog"`
	Version      int     `yaml:"version"`
	Queries      []Query `yaml:"queries"`
	Aggregations []Query `yaml:"aggregations"`
}

// All returns every catalog entry, fraud queries first.
func (c *Catalog) All() []Query {
	out := make([]Query, 0, len(c.Queries)+len(c.Aggregations))
	out = append(out, c.Queries...)
	out = append(out, c.Aggregations...)
	return out
}

func (c *Catalog) Len() int {
	return len(c.Queries) + len(c.Aggregations)
}

var (
	catalogOnce  sync.Once
	catalogCache *Catalog
	catalogErr   error
)

// LoadCatalog parses and validates the catalog once per process. Unlike a
// config default, there is no fallback: a catalog that fails validation
// means no analytics run at all.
func LoadCatalog() (*Catalog, error) {
	catalogOnce.Do(func() {
		catalogCache, catalogErr = loadCatalog()
	})
	return catalogCache, catalogErr
}

func loadCatalog() (*Catalog, error) {
	data, err := readCatalogBytes()
	if err != nil {
		return nil, fmt.Errorf("analytics: read catalog: %w", err)
	}
	catalog, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("analytics: parse catalog: %w", err)
	}
	return catalog, nil
}

func readCatalogBytes() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(catalogEnv)); path != "" {
		return os.ReadFile(path)
	}
	return catalogFS.ReadFile("queries.yaml")
}

func parseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	if err := validateCatalog(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func validateCatalog(c *Catalog) error {
	if c == nil {
		return errors.New("missing catalog")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("catalog name is required")
	}
	if c.Len() == 0 {
		return errors.New("no queries defined")
	}

	slugs := map[string]bool{}
	for _, q := range c.All() {
		if strings.TrimSpace(q.Name) == "" {
			return errors.New("query name is required")
		}
		slug := strings.TrimSpace(q.Slug)
		if slug == "" {
			return fmt.Errorf("query %q: slug is required", q.Name)
		}
		if !validSlug(slug) {
			return fmt.Errorf("query %q: slug %q is not snake_case", q.Name, slug)
		}
		if slugs[slug] {
			return fmt.Errorf("duplicate slug: %s", slug)
		}
		slugs[slug] = true
		if strings.TrimSpace(q.Cypher) == "" {
			return fmt.Errorf("query %s: cypher is empty", slug)
		}
		if len(q.Columns) == 0 {
			return fmt.Errorf("query %s: no result columns declared", slug)
		}
		for _, col := range q.Columns {
			if strings.TrimSpace(col) == "" {
				return fmt.Errorf("query %s: empty column name", slug)
			}
		}
	}
	return nil
}

func validSlug(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
