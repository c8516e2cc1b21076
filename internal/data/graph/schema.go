package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/medwatch/claimgraph/internal/platform/logger"
	"github.com/medwatch/claimgraph/internal/platform/neo4jdb"
	"github.com/medwatch/claimgraph/internal/types"
)

// Manager declares the storage schema ahead of any load: the target
// database and one uniqueness constraint per node kind's key property.
type Manager struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewManager(client *neo4jdb.Client, log *logger.Logger) *Manager {
	return &Manager{
		client: client,
		log:    log.With("component", "SchemaManager"),
	}
}

// EnsureDatabase makes the configured database exist, creating it through
// the system database when absent. Servers that reject database
// administration (community edition) get a warning and the client is
// repointed at the stock "neo4j" database. Returns the effective database
// name.
func (m *Manager) EnsureDatabase(ctx context.Context) (string, error) {
	name := m.client.Database

	session := m.client.SystemSession(ctx)
	defer session.Close(ctx)

	exists, err := m.databaseExists(ctx, session, name)
	if err != nil {
		if neo4jdb.IsUnsupportedAdmin(err) {
			return m.fallbackDatabase(name), nil
		}
		m.log.Warn("database listing failed, attempting create anyway", "database", name, "error", err)
	}
	if exists {
		m.log.Info("database present", "database", name)
		return name, nil
	}

	res, err := session.Run(ctx, fmt.Sprintf("CREATE DATABASE `%s` IF NOT EXISTS", name), nil)
	if err == nil {
		_, err = res.Consume(ctx)
	}
	if err != nil {
		switch {
		case neo4jdb.IsUnsupportedAdmin(err):
			return m.fallbackDatabase(name), nil
		case neo4jdb.IsSchemaExists(err):
			m.log.Info("database present", "database", name)
			return name, nil
		default:
			return "", neo4jdb.OpErr("ensure database", neo4jdb.OperationErrorSchema, "", err)
		}
	}

	m.log.Info("database created", "database", name)
	return name, nil
}

func (m *Manager) fallbackDatabase(wanted string) string {
	m.log.Warn("server does not support database administration, using default database",
		"wanted", wanted,
		"database", "neo4j",
	)
	m.client.Database = "neo4j"
	return m.client.Database
}

func (m *Manager) databaseExists(ctx context.Context, session neo4j.SessionWithContext, name string) (bool, error) {
	res, err := session.Run(ctx, "SHOW DATABASES YIELD name WHERE name = $name RETURN name", map[string]any{"name": name})
	if err != nil {
		return false, err
	}
	found := false
	for res.Next(ctx) {
		found = true
	}
	if err := res.Err(); err != nil {
		return false, err
	}
	return found, nil
}

// EnsureConstraints declares one uniqueness constraint per node kind,
// named <label>_<property>_unique. A collision with an equivalent existing
// rule is logged and treated as success.
func (m *Manager) EnsureConstraints(ctx context.Context) error {
	session := m.client.WriteSession(ctx)
	defer session.Close(ctx)

	for _, kind := range types.AllNodeKinds {
		name := constraintName(kind)
		stmt := fmt.Sprintf(
			"CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			name, kind.Label(), kind.KeyProperty(),
		)
		res, err := session.Run(ctx, stmt, nil)
		if err == nil {
			_, err = res.Consume(ctx)
		}
		if err != nil {
			if neo4jdb.IsSchemaExists(err) {
				m.log.Warn("constraint already declared", "constraint", name)
				continue
			}
			return neo4jdb.OpErr("ensure constraint "+name, neo4jdb.OperationErrorSchema, "", err)
		}
		m.log.Info("constraint ensured", "constraint", name, "label", kind.Label(), "property", kind.KeyProperty())
	}
	return nil
}

// VerifySchema lists the declared indexes and constraints and reports
// their counts. Empty listings are logged as warnings, not failures, since
// restricted users may not be allowed to inspect schema.
func (m *Manager) VerifySchema(ctx context.Context) (indexes, constraints int, err error) {
	session := m.client.ReadSession(ctx)
	defer session.Close(ctx)

	indexes, err = m.countListing(ctx, session, "SHOW INDEXES")
	if err != nil {
		return 0, 0, neo4jdb.OpErr("show indexes", neo4jdb.OperationErrorRead, "", err)
	}
	constraints, err = m.countListing(ctx, session, "SHOW CONSTRAINTS")
	if err != nil {
		return 0, 0, neo4jdb.OpErr("show constraints", neo4jdb.OperationErrorRead, "", err)
	}

	if indexes == 0 {
		m.log.Warn("no indexes listed")
	}
	if constraints == 0 {
		m.log.Warn("no constraints listed")
	}
	m.log.Info("schema verified", "indexes", indexes, "constraints", constraints)
	return indexes, constraints, nil
}

func (m *Manager) countListing(ctx context.Context, session neo4j.SessionWithContext, stmt string) (int, error) {
	res, err := session.Run(ctx, stmt, nil)
	if err != nil {
		return 0, err
	}
	count := 0
	for res.Next(ctx) {
		count++
	}
	if err := res.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

func constraintName(kind types.NodeKind) string {
	return fmt.Sprintf("%s_%s_unique", strings.ToLower(kind.Label()), kind.KeyProperty())
}
