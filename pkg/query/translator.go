// Package query turns natural-language questions into Cypher, executes them
// against the graph store and narrates the retrieved rows back into text.
package query

import (
	"context"
	"fmt"
	"strings"

	"lexgraph"
	"lexgraph/pkg/ai"
	"lexgraph/pkg/logger"
)

// RowReader is the read surface the translator needs from the graph store.
type RowReader interface {
	ReadRows(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// DefaultLimit caps how many contracts a single question retrieves.
const DefaultLimit = 10

// graphSchema is the node/edge vocabulary handed to the model. It mirrors
// what EnsureSchema actually creates; keep the two in sync.
const graphSchema = `
- Contract nodes with properties: title, contract_type, summary, execution_date, closing_date, effectiveness_date, total_offering_amount, governing_law, upfront_payment, royalty_rate, exclusivity, field_of_use
- Party nodes with properties: name, role, entity_type, jurisdiction
- Security nodes with properties: security_type, number_of_shares, price_per_share, exercise_price
- Patent nodes with properties: patent_number
- Product nodes with properties: name
- Territory nodes with properties: name

RELATIONSHIPS:
- (Party)-[:PARTY_TO]->(Contract)
- (Party)-[:IS_LICENSOR_OF]->(Contract)
- (Party)-[:IS_LICENSEE_OF]->(Contract)
- (Contract)-[:ISSUES_SECURITY]->(Security)
- (Contract)-[:LICENSES]->(Patent)
- (Contract)-[:LICENSES]->(Product)
- (Contract)-[:COVERS_TERRITORY]->(Territory)
`

// Rows is what a retrieval returns: one map per contract, nested
// collections already cleaned of empty placeholders.
type Rows []map[string]any

// Translator owns the question-to-answer flow.
type Translator struct {
	store  RowReader
	client ai.ContractAIClient
	limit  int
}

// NewTranslator wires a translator over a store and a model client.
func NewTranslator(store RowReader, client ai.ContractAIClient) *Translator {
	return &Translator{store: store, client: client, limit: DefaultLimit}
}

// GenerateCypher asks the model for a query matching the question and
// repairs the common failure shapes. An unusable response is reported
// under ErrQueryGeneration.
func (t *Translator) GenerateCypher(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(ai.CypherPrompt, graphSchema, question, t.limit)

	raw, err := t.client.GenerateCompletion(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", lexgraph.ErrQueryGeneration, err)
	}

	cypher, err := RepairCypher(raw)
	if err != nil {
		return "", err
	}
	return cypher, nil
}

// Retrieve answers the question with graph rows. Generation or execution
// failures fall back to the canonical retrieval query so the caller always
// gets rows when the graph has any.
func (t *Translator) Retrieve(ctx context.Context, question string) (Rows, error) {
	cypher, err := t.GenerateCypher(ctx, question)
	if err != nil {
		logger.Warn("[Query] generation failed, using fallback query", "err", err)
		return t.fallbackRows(ctx)
	}
	logger.Debug("[Query] generated cypher", "query", cypher)

	raw, err := t.store.ReadRows(ctx, cypher, nil)
	if err != nil {
		logger.Warn("[Query] generated query failed, using fallback query", "err", err)
		return t.fallbackRows(ctx)
	}
	return cleanRows(raw), nil
}

func (t *Translator) fallbackRows(ctx context.Context) (Rows, error) {
	raw, err := t.store.ReadRows(ctx, FallbackCypher(t.limit), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lexgraph.ErrQueryExecution, err)
	}
	return cleanRows(raw), nil
}

// Answer retrieves contracts for the question and narrates them through the
// model. It always returns displayable text; failures degrade to a plain
// formatted listing or an apology line, never an error.
func (t *Translator) Answer(ctx context.Context, question string) string {
	rows, err := t.Retrieve(ctx, question)
	if err != nil {
		logger.Error("[Query] retrieval failed", "question", question, "err", err)
		return "I could not retrieve any contracts for that question. The graph may be empty or unreachable."
	}
	if len(rows) == 0 {
		return "No contracts in the graph match that question."
	}

	listing := FormatRows(rows)
	prompt := fmt.Sprintf(ai.AnswerPrompt, listing, question)

	answer, err := t.client.GenerateCompletion(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		logger.Warn("[Query] narration failed, returning raw listing", "err", err)
		return listing
	}
	return strings.TrimSpace(answer)
}
