// Package graphstore persists extracted contract records into Neo4j and
// exposes the read surface the query translator runs against.
package graphstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"lexgraph/pkg/logger"
)

// Store wraps a Neo4j driver scoped to one database.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

// OpenParams carries the connection settings for Open.
type OpenParams struct {
	URI      string
	Username string
	Password string
	Database string // empty means the server default
}

// Open connects to Neo4j, verifies connectivity and applies the graph
// schema. A missing URI is the only configuration error treated as fatal.
func Open(ctx context.Context, params OpenParams) (*Store, error) {
	if params.URI == "" {
		return nil, fmt.Errorf("graphstore: neo4j uri is required")
	}

	driver, err := neo4j.NewDriverWithContext(params.URI, neo4j.BasicAuth(params.Username, params.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("graphstore: create driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("graphstore: verify connectivity: %w", err)
	}

	store := &Store{driver: driver, database: params.Database}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}

	logger.Info("[GraphStore] connected", "uri", params.URI, "database", params.Database)
	return store, nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
}

// ReadRows runs a read query and returns each result row as a map keyed by
// the projected column names.
func (s *Store) ReadRows(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := s.session(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return records.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*neo4j.Record)
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}

// Reset removes every node and relationship. Meant for tests and tooling,
// never called by the ingestion pipeline.
func (s *Store) Reset(ctx context.Context) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		return nil, err
	})
	return err
}
