package graphstore

import (
	"context"
	"errors"
	"fmt"

	"lexgraph"
)

var statNodeLabels = []struct {
	label string
	key   string
}{
	{"Contract", "contracts"},
	{"Party", "parties"},
	{"Security", "securities"},
	{"Patent", "patents"},
	{"Product", "products"},
	{"Territory", "territories"},
}

var statRelationshipTypes = []struct {
	relType string
	key     string
}{
	{"PARTY_TO", "party_relationships"},
	{"IS_LICENSOR_OF", "licensor_relationships"},
	{"IS_LICENSEE_OF", "licensee_relationships"},
	{"ISSUES_SECURITY", "security_relationships"},
	{"LICENSES", "license_relationships"},
	{"COVERS_TERRITORY", "territory_relationships"},
}

// Stats counts nodes per label and relationships per type. The caller
// bounds the work through ctx; a deadline surfaces as ErrStatsTimeout so
// report formatting can degrade instead of failing the run.
func (s *Store) Stats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64, len(statNodeLabels)+len(statRelationshipTypes))

	count := func(query, key string) error {
		rows, err := s.ReadRows(ctx, query, nil)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: counting %s", lexgraph.ErrStatsTimeout, key)
			}
			return fmt.Errorf("counting %s: %w", key, err)
		}
		if len(rows) > 0 {
			stats[key], _ = rows[0]["n"].(int64)
		}
		return nil
	}

	for _, node := range statNodeLabels {
		query := fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS n", node.label)
		if err := count(query, node.key); err != nil {
			return nil, err
		}
	}
	for _, rel := range statRelationshipTypes {
		query := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r) AS n", rel.relType)
		if err := count(query, rel.key); err != nil {
			return nil, err
		}
	}
	return stats, nil
}
