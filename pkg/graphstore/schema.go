package graphstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// schemaStatements are idempotent: IF NOT EXISTS makes re-running them on
// every Open safe.
var schemaStatements = []string{
	"CREATE CONSTRAINT contract_title IF NOT EXISTS FOR (c:Contract) REQUIRE c.title IS UNIQUE",
	"CREATE CONSTRAINT party_name IF NOT EXISTS FOR (p:Party) REQUIRE p.name IS UNIQUE",
	"CREATE CONSTRAINT patent_number IF NOT EXISTS FOR (p:Patent) REQUIRE p.patent_number IS UNIQUE",
	"CREATE CONSTRAINT product_name IF NOT EXISTS FOR (p:Product) REQUIRE p.name IS UNIQUE",
	"CREATE CONSTRAINT territory_name IF NOT EXISTS FOR (t:Territory) REQUIRE t.name IS UNIQUE",

	"CREATE INDEX contract_execution_date IF NOT EXISTS FOR (c:Contract) ON (c.execution_date)",
	"CREATE INDEX contract_type IF NOT EXISTS FOR (c:Contract) ON (c.contract_type)",
	"CREATE INDEX contract_offering_amount IF NOT EXISTS FOR (c:Contract) ON (c.total_offering_amount)",
}

// EnsureSchema applies uniqueness constraints and indexes.
func (s *Store) EnsureSchema(ctx context.Context) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, stmt := range schemaStatements {
			if _, err := tx.Run(ctx, stmt, nil); err != nil {
				return nil, fmt.Errorf("apply %q: %w", stmt, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("graphstore: ensure schema: %w", err)
	}
	return nil
}
