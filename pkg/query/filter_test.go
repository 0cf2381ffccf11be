package query

import (
	"strings"
	"testing"
)

func TestFilterBuildCypherEmpty(t *testing.T) {
	cypher, params := Filter{}.BuildCypher()

	if strings.Contains(cypher, "WHERE") {
		t.Fatalf("empty filter must not emit WHERE, got:\n%s", cypher)
	}
	if len(params) != 0 {
		t.Fatalf("empty filter must emit no params, got %v", params)
	}
	if !strings.Contains(cypher, "LIMIT 10") {
		t.Fatalf("default limit missing, got:\n%s", cypher)
	}
}

func TestFilterBuildCypherConditions(t *testing.T) {
	filter := Filter{
		LicensorName:      "Abeona",
		MinOfferingAmount: 1000000,
		PatentNumber:      "9,876,543",
		Territory:         "worldwide",
		Limit:             5,
	}
	cypher, params := filter.BuildCypher()

	for _, want := range []string{
		"MATCH (l:Party)-[:IS_LICENSOR_OF]->(c)",
		"l.name CONTAINS $licensor_name",
		"c.total_offering_amount >= $min_offering_amount",
		"pat.patent_number CONTAINS $patent_number",
		"t.name CONTAINS $territory",
		"LIMIT 5",
	} {
		if !strings.Contains(cypher, want) {
			t.Fatalf("missing %q in:\n%s", want, cypher)
		}
	}

	if params["licensor_name"] != "Abeona" {
		t.Fatalf("licensor_name param = %v", params["licensor_name"])
	}
	if params["min_offering_amount"] != 1000000.0 {
		t.Fatalf("min_offering_amount param = %v", params["min_offering_amount"])
	}

	whereCount := strings.Count(cypher, "WHERE")
	if whereCount != 1 {
		t.Fatalf("conditions must share one WHERE clause, found %d", whereCount)
	}
	if !strings.Contains(cypher, " AND ") {
		t.Fatalf("multiple conditions must be AND-joined:\n%s", cypher)
	}
}

func TestFilterBuildCypherDateBounds(t *testing.T) {
	cypher, params := Filter{ExecutedAfter: "2020-01-01", ExecutedBefore: "2022-12-31"}.BuildCypher()

	if !strings.Contains(cypher, "c.execution_date >= date($executed_after)") {
		t.Fatalf("missing lower date bound:\n%s", cypher)
	}
	if !strings.Contains(cypher, "c.execution_date <= date($executed_before)") {
		t.Fatalf("missing upper date bound:\n%s", cypher)
	}
	if params["executed_after"] != "2020-01-01" || params["executed_before"] != "2022-12-31" {
		t.Fatalf("date params = %v", params)
	}
}
