package query

import (
	"context"
	"fmt"
	"strings"

	"lexgraph"
)

// Filter is the structured alternative to free-form questions: every field
// maps onto one known graph dimension, so the query is built
// deterministically with parameters and never touches the model.
type Filter struct {
	PartyName    string
	LicensorName string
	LicenseeName string

	ContractType string
	SecurityType string

	MinOfferingAmount float64
	MaxOfferingAmount float64

	ExecutedAfter  string // YYYY-MM-DD
	ExecutedBefore string // YYYY-MM-DD

	PatentNumber string
	Territory    string

	Limit int // <= 0 means DefaultLimit
}

// BuildCypher assembles the filter into a parameterized query. Each set
// field contributes its own MATCH or WHERE condition; unset fields cost
// nothing.
func (f Filter) BuildCypher() (string, map[string]any) {
	clauses := []string{"MATCH (c:Contract)"}
	var conditions []string
	params := map[string]any{}

	if f.PartyName != "" {
		clauses = append(clauses, "MATCH (p:Party)-[:PARTY_TO|IS_LICENSOR_OF|IS_LICENSEE_OF]->(c)")
		conditions = append(conditions, "p.name CONTAINS $party_name")
		params["party_name"] = f.PartyName
	}
	if f.LicensorName != "" {
		clauses = append(clauses, "MATCH (l:Party)-[:IS_LICENSOR_OF]->(c)")
		conditions = append(conditions, "l.name CONTAINS $licensor_name")
		params["licensor_name"] = f.LicensorName
	}
	if f.LicenseeName != "" {
		clauses = append(clauses, "MATCH (le:Party)-[:IS_LICENSEE_OF]->(c)")
		conditions = append(conditions, "le.name CONTAINS $licensee_name")
		params["licensee_name"] = f.LicenseeName
	}
	if f.ContractType != "" {
		conditions = append(conditions, "c.contract_type = $contract_type")
		params["contract_type"] = f.ContractType
	}
	if f.SecurityType != "" {
		clauses = append(clauses, "MATCH (c)-[:ISSUES_SECURITY]->(s:Security)")
		conditions = append(conditions, "s.security_type = $security_type")
		params["security_type"] = f.SecurityType
	}
	if f.MinOfferingAmount > 0 {
		conditions = append(conditions, "c.total_offering_amount >= $min_offering_amount")
		params["min_offering_amount"] = f.MinOfferingAmount
	}
	if f.MaxOfferingAmount > 0 {
		conditions = append(conditions, "c.total_offering_amount <= $max_offering_amount")
		params["max_offering_amount"] = f.MaxOfferingAmount
	}
	if f.ExecutedAfter != "" {
		conditions = append(conditions, "c.execution_date >= date($executed_after)")
		params["executed_after"] = f.ExecutedAfter
	}
	if f.ExecutedBefore != "" {
		conditions = append(conditions, "c.execution_date <= date($executed_before)")
		params["executed_before"] = f.ExecutedBefore
	}
	if f.PatentNumber != "" {
		clauses = append(clauses, "MATCH (c)-[:LICENSES]->(pat:Patent)")
		conditions = append(conditions, "pat.patent_number CONTAINS $patent_number")
		params["patent_number"] = f.PatentNumber
	}
	if f.Territory != "" {
		clauses = append(clauses, "MATCH (c)-[:COVERS_TERRITORY]->(t:Territory)")
		conditions = append(conditions, "t.name CONTAINS $territory")
		params["territory"] = f.Territory
	}

	if len(conditions) > 0 {
		clauses = append(clauses, "WHERE "+strings.Join(conditions, " AND "))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	clauses = append(clauses, canonicalProjection(limit))

	return strings.Join(clauses, "\n"), params
}

// Search runs a structured filter against the graph.
func (t *Translator) Search(ctx context.Context, filter Filter) (Rows, error) {
	cypher, params := filter.BuildCypher()

	raw, err := t.store.ReadRows(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lexgraph.ErrQueryExecution, err)
	}
	return cleanRows(raw), nil
}
