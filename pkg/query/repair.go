package query

import (
	"fmt"
	"strings"

	"lexgraph"
)

// wholeNodeMarkers are the RETURN shapes models fall into when ignoring the
// explicit-projection instruction. A whole-node return comes back as driver
// node objects instead of flat columns, so it has to be rewritten.
var wholeNodeMarkers = []string{
	"RETURN C,", "RETURN C ", "RETURN C\n",
	"RETURN LC,", "RETURN LC ", "RETURN LC\n",
	"RETURN P,", "RETURN PARTY,",
}

// RepairCypher normalizes a model-generated query: markdown fences are
// stripped, leading prose is trimmed to the first MATCH, and whole-node
// projections are replaced with the canonical one. A response with no MATCH
// clause at all is unusable and reported under ErrQueryGeneration.
func RepairCypher(raw string) (string, error) {
	cypher := strings.TrimSpace(raw)

	cypher = stripFences(cypher)

	if !strings.HasPrefix(strings.ToUpper(cypher), "MATCH") {
		idx := strings.Index(strings.ToUpper(cypher), "MATCH")
		if idx < 0 {
			return "", fmt.Errorf("%w: no MATCH clause in model response", lexgraph.ErrQueryGeneration)
		}
		cypher = cypher[idx:]
	}

	if hasWholeNodeReturn(cypher) {
		cypher = spliceProjection(cypher)
	}
	return cypher, nil
}

func stripFences(cypher string) string {
	if !strings.Contains(cypher, "```") {
		return cypher
	}

	start := strings.Index(cypher, "```")
	end := strings.LastIndex(cypher, "```")
	if end > start {
		cypher = cypher[start+3 : end]
	} else {
		cypher = cypher[start+3:]
	}
	// the opening fence often carries a language tag
	cypher = strings.TrimPrefix(strings.TrimSpace(cypher), "cypher")
	return strings.TrimSpace(cypher)
}

func hasWholeNodeReturn(cypher string) bool {
	upper := strings.ToUpper(cypher)
	for _, marker := range wholeNodeMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// spliceProjection keeps the query's MATCH structure and replaces
// everything from the first RETURN on with the canonical projection. The
// projection assumes the contract is bound as c, which the schema prompt
// instructs; a query without any usable clauses degrades to the fallback.
func spliceProjection(cypher string) string {
	var kept []string
	for _, line := range strings.Split(cypher, "\n") {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)
		if strings.HasPrefix(upper, "RETURN") {
			break
		}
		if strings.HasPrefix(upper, "MATCH") || strings.HasPrefix(upper, "OPTIONAL MATCH") ||
			strings.HasPrefix(upper, "WHERE") || strings.HasPrefix(upper, "WITH") {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return FallbackCypher(DefaultLimit)
	}
	return strings.Join(kept, "\n") + "\n" + canonicalProjection(DefaultLimit)
}
