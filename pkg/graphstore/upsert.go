package graphstore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"lexgraph"
	"lexgraph/pkg/contract"
	"lexgraph/pkg/logger"
)

const upsertContractCypher = `
MERGE (c:Contract {title: $title})
SET c.contract_type = $contract_type,
    c.summary = $summary,
    c.execution_date = CASE WHEN $execution_date IS NOT NULL
                       THEN date($execution_date) ELSE NULL END,
    c.closing_date = CASE WHEN $closing_date IS NOT NULL
                     THEN date($closing_date) ELSE NULL END,
    c.effectiveness_date = CASE WHEN $effectiveness_date IS NOT NULL
                           THEN date($effectiveness_date) ELSE NULL END,
    c.total_offering_amount = $total_offering_amount,
    c.governing_law = $governing_law,
    c.registration_rights = $registration_rights,
    c.resale_restrictions = $resale_restrictions,
    c.upfront_payment = $upfront_payment,
    c.royalty_rate = $royalty_rate,
    c.exclusivity = $exclusivity,
    c.field_of_use = $field_of_use,
    c.source_path = $source_path
`

const replaceSecuritiesCypher = `
MATCH (c:Contract {title: $title})
OPTIONAL MATCH (c)-[:ISSUES_SECURITY]->(old:Security)
DETACH DELETE old
WITH DISTINCT c
UNWIND $securities AS sec
CREATE (s:Security)
SET s.security_type = sec.security_type,
    s.number_of_shares = sec.number_of_shares,
    s.price_per_share = sec.price_per_share,
    s.exercise_price = sec.exercise_price
MERGE (c)-[:ISSUES_SECURITY]->(s)
`

const replaceConditionsCypher = `
MATCH (c:Contract {title: $title})
OPTIONAL MATCH (c)-[:HAS_CLOSING_CONDITION]->(old:ClosingCondition)
DETACH DELETE old
WITH DISTINCT c
UNWIND $conditions AS cond
CREATE (cc:ClosingCondition {description: cond})
MERGE (c)-[:HAS_CLOSING_CONDITION]->(cc)
`

const replaceRepresentationsCypher = `
MATCH (c:Contract {title: $title})
OPTIONAL MATCH (c)-[:INCLUDES_REPRESENTATION]->(old:Representation)
DETACH DELETE old
WITH DISTINCT c
UNWIND $representations AS rep
CREATE (r:Representation {description: rep})
MERGE (c)-[:INCLUDES_REPRESENTATION]->(r)
`

const upsertPatentsCypher = `
MATCH (c:Contract {title: $title})
UNWIND $patents AS number
MERGE (p:Patent {patent_number: number})
MERGE (c)-[:LICENSES]->(p)
`

const upsertProductsCypher = `
MATCH (c:Contract {title: $title})
UNWIND $products AS name
MERGE (p:Product {name: name})
MERGE (c)-[:LICENSES]->(p)
`

const upsertTerritoriesCypher = `
MATCH (c:Contract {title: $title})
UNWIND $territories AS name
MERGE (t:Territory {name: name})
MERGE (c)-[:COVERS_TERRITORY]->(t)
`

const stubContractCypher = `
MERGE (c:Contract {title: $title})
SET c.contract_type = $contract_type,
    c.summary = $summary
`

// relationshipForRole maps a party role onto its edge type. Relationship
// types cannot be parameterized in Cypher, so the statement is assembled
// from this fixed vocabulary only.
func relationshipForRole(role contract.PartyRole) string {
	switch role {
	case contract.RoleLicensor:
		return "IS_LICENSOR_OF"
	case contract.RoleLicensee:
		return "IS_LICENSEE_OF"
	default:
		return "PARTY_TO"
	}
}

func upsertPartyCypher(role contract.PartyRole) string {
	return fmt.Sprintf(`
MATCH (c:Contract {title: $title})
MERGE (p:Party {name: $name})
SET p.role = $role,
    p.entity_type = $entity_type,
    p.jurisdiction = $jurisdiction
MERGE (p)-[:%s]->(c)
`, relationshipForRole(role))
}

func dateParam(d contract.Date) any {
	if d.IsZero() {
		return nil
	}
	return string(d)
}

func amountParam(v float64) any {
	if v == 0 {
		return nil
	}
	return v
}

func buildContractParams(rec *contract.Record) map[string]any {
	params := map[string]any{
		"title":                 rec.Title,
		"contract_type":         string(rec.ContractType),
		"summary":               rec.Summary,
		"execution_date":        dateParam(rec.ExecutionDate),
		"closing_date":          dateParam(rec.ClosingDate),
		"effectiveness_date":    dateParam(rec.EffectivenessDate),
		"total_offering_amount": amountParam(rec.TotalOfferingAmount),
		"governing_law":         rec.GoverningLaw,
		"registration_rights":   rec.RegistrationRights,
		"resale_restrictions":   rec.ResaleRestrictions,
		"upfront_payment":       nil,
		"royalty_rate":          nil,
		"exclusivity":           nil,
		"field_of_use":          nil,
		"source_path":           rec.SourcePath,
	}
	if lic := rec.License; lic != nil {
		params["upfront_payment"] = amountParam(lic.UpfrontPayment)
		params["royalty_rate"] = amountParam(lic.RoyaltyRate)
		params["exclusivity"] = string(lic.Exclusivity)
		params["field_of_use"] = lic.FieldOfUse
	}
	return params
}

func buildSecurityParams(secs []contract.Security) []map[string]any {
	out := make([]map[string]any, 0, len(secs))
	for _, sec := range secs {
		out = append(out, map[string]any{
			"security_type":    string(sec.Type),
			"number_of_shares": sec.Count,
			"price_per_share":  amountParam(sec.PricePerShare),
			"exercise_price":   amountParam(sec.ExercisePrice),
		})
	}
	return out
}

// UpsertContract writes one record into the graph. The contract node is
// merged by title, parties and licensed entities by their natural keys, so
// re-ingesting the same file never duplicates primary nodes. Securities,
// conditions and representations carry no natural key and are replaced
// wholesale. On failure a minimal stub node is written so the contract is
// at least discoverable, and the error is reported under ErrPersistence.
func (s *Store) UpsertContract(ctx context.Context, rec *contract.Record) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, upsertContractCypher, buildContractParams(rec)); err != nil {
			return nil, fmt.Errorf("contract node: %w", err)
		}

		for _, party := range rec.Parties {
			if party.Name == "" {
				continue
			}
			params := map[string]any{
				"title":        rec.Title,
				"name":         party.Name,
				"role":         string(party.Role),
				"entity_type":  party.EntityType,
				"jurisdiction": party.Jurisdiction,
			}
			if _, err := tx.Run(ctx, upsertPartyCypher(party.Role), params); err != nil {
				return nil, fmt.Errorf("party %q: %w", party.Name, err)
			}
		}

		if _, err := tx.Run(ctx, replaceSecuritiesCypher, map[string]any{
			"title":      rec.Title,
			"securities": buildSecurityParams(rec.Securities),
		}); err != nil {
			return nil, fmt.Errorf("securities: %w", err)
		}

		if _, err := tx.Run(ctx, replaceConditionsCypher, map[string]any{
			"title":      rec.Title,
			"conditions": rec.ClosingConditions,
		}); err != nil {
			return nil, fmt.Errorf("closing conditions: %w", err)
		}

		if _, err := tx.Run(ctx, replaceRepresentationsCypher, map[string]any{
			"title":           rec.Title,
			"representations": rec.Representations,
		}); err != nil {
			return nil, fmt.Errorf("representations: %w", err)
		}

		if lic := rec.License; lic != nil {
			if _, err := tx.Run(ctx, upsertPatentsCypher, map[string]any{
				"title":   rec.Title,
				"patents": nonEmpty(lic.Patents),
			}); err != nil {
				return nil, fmt.Errorf("patents: %w", err)
			}
			if _, err := tx.Run(ctx, upsertProductsCypher, map[string]any{
				"title":    rec.Title,
				"products": nonEmpty(lic.Products),
			}); err != nil {
				return nil, fmt.Errorf("products: %w", err)
			}
			if _, err := tx.Run(ctx, upsertTerritoriesCypher, map[string]any{
				"title":       rec.Title,
				"territories": nonEmpty(lic.Territories),
			}); err != nil {
				return nil, fmt.Errorf("territories: %w", err)
			}
		}

		return nil, nil
	})
	if err == nil {
		return nil
	}

	logger.Warn("[GraphStore] full upsert failed, writing stub", "title", rec.Title, "err", err)
	if stubErr := s.writeStub(ctx, rec); stubErr != nil {
		logger.Error("[GraphStore] stub write failed", "title", rec.Title, "err", stubErr)
	}
	return fmt.Errorf("%w: upsert %q: %v", lexgraph.ErrPersistence, rec.Title, err)
}

func (s *Store) writeStub(ctx context.Context, rec *contract.Record) error {
	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, stubContractCypher, map[string]any{
			"title":         rec.Title,
			"contract_type": string(rec.ContractType),
			"summary":       rec.Summary,
		})
		return nil, err
	})
	return err
}

// ContractExists reports whether a contract with this title is already in
// the graph.
func (s *Store) ContractExists(ctx context.Context, title string) (bool, error) {
	rows, err := s.ReadRows(ctx, "MATCH (c:Contract {title: $title}) RETURN count(c) AS n", map[string]any{"title": title})
	if err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	n, _ := rows[0]["n"].(int64)
	return n > 0, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
