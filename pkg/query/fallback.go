package query

import "fmt"

// canonicalProjection expands a bound contract c into flat columns plus
// collected related entities. Both the fallback query and repaired
// whole-node queries end in this block.
func canonicalProjection(limit int) string {
	return fmt.Sprintf(`WITH DISTINCT c
OPTIONAL MATCH (p:Party)-[:PARTY_TO|IS_LICENSOR_OF|IS_LICENSEE_OF]->(c)
OPTIONAL MATCH (c)-[:ISSUES_SECURITY]->(s:Security)
OPTIONAL MATCH (c)-[:LICENSES]->(pat:Patent)
OPTIONAL MATCH (c)-[:LICENSES]->(prod:Product)
OPTIONAL MATCH (c)-[:COVERS_TERRITORY]->(t:Territory)
WITH c,
     collect(DISTINCT {name: p.name, role: p.role, entity_type: p.entity_type, jurisdiction: p.jurisdiction}) AS parties,
     collect(DISTINCT {security_type: s.security_type, number_of_shares: s.number_of_shares, price_per_share: s.price_per_share, exercise_price: s.exercise_price}) AS securities,
     collect(DISTINCT {patent_number: pat.patent_number}) AS patents,
     collect(DISTINCT {name: prod.name}) AS products,
     collect(DISTINCT {name: t.name}) AS territories
RETURN c.title AS title,
       c.contract_type AS contract_type,
       c.summary AS summary,
       c.execution_date AS execution_date,
       c.total_offering_amount AS total_offering_amount,
       c.upfront_payment AS upfront_payment,
       c.royalty_rate AS royalty_rate,
       c.exclusivity AS exclusivity,
       c.field_of_use AS field_of_use,
       c.governing_law AS governing_law,
       parties,
       securities,
       patents,
       products,
       territories
ORDER BY c.execution_date DESC
LIMIT %d`, limit)
}

// FallbackCypher is the canonical retrieval query used whenever generation
// or execution of a model query fails.
func FallbackCypher(limit int) string {
	return "MATCH (c:Contract)\n" + canonicalProjection(limit)
}
