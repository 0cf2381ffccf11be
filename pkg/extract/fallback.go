package extract

import (
	"fmt"
	"regexp"
	"strings"

	"lexgraph/pkg/contract"
)

// fallbackMarker tags summaries of records built without a usable generative
// extraction, so later passes can tell them apart and regenerate.
const fallbackMarker = "extraction incomplete"

var (
	fallbackTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:this\s+)?"?([^"\n]*agreement[^"\n]*)"?`),
		regexp.MustCompile(`(?im)title[:\s]*([^\n]+)`),
		regexp.MustCompile(`(?m)^([A-Z][A-Z\s]+AGREEMENT)`),
	}
	fallbackPartyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)between\s+([^,]+),?\s+.*?and\s+([^,\n]+)`),
		regexp.MustCompile(`(?i)by and between\s+([^,]+),?\s+.*?and\s+([^,\n]+)`),
	}
)

// FallbackRecord builds a best-effort record when generative extraction
// failed. The title is guessed from text-prefix patterns, parties from the
// recital, and the summary carries the failure annotation. The rule-based
// record fills the rest during merge.
func FallbackRecord(text string, contractType contract.ContractType, cause error) *contract.Record {
	title := titleForType(contractType)
	head := window(text, 1000)
	for _, pattern := range fallbackTitlePatterns {
		if m := pattern.FindStringSubmatch(head); m != nil {
			if t := strings.TrimSpace(m[1]); t != "" {
				title = t
				break
			}
		}
	}

	var parties []contract.Party
	recital := window(text, partyWindow)
	for _, pattern := range fallbackPartyPatterns {
		m := pattern.FindStringSubmatch(recital)
		if m == nil {
			continue
		}
		first := strings.TrimSpace(m[1])
		second := strings.TrimSpace(m[2])
		if issuerName(first) {
			parties = append(parties,
				contract.Party{Name: first, Role: contract.RoleIssuer},
				contract.Party{Name: second, Role: contract.RoleInvestor},
			)
		} else {
			parties = append(parties,
				contract.Party{Name: first, Role: contract.RoleInvestor},
				contract.Party{Name: second, Role: contract.RoleIssuer},
			)
		}
		break
	}

	return &contract.Record{
		Title:        title,
		ContractType: contractType,
		Summary:      fallbackSummary(cause),
		Parties:      parties,
	}
}

func fallbackSummary(cause error) string {
	if cause == nil {
		return fallbackMarker
	}
	msg := strings.ReplaceAll(cause.Error(), "\n", " ")
	if len(msg) > 100 {
		msg = msg[:100] + "..."
	}
	return fmt.Sprintf("%s: %s", fallbackMarker, msg)
}

func titleForType(t contract.ContractType) string {
	switch t {
	case contract.TypeSecuritiesPurchase:
		return "Securities Purchase Agreement"
	case contract.TypeLicense:
		return "License Agreement"
	case contract.TypeEmployment:
		return "Employment Agreement"
	case contract.TypeSettlement:
		return "Settlement Agreement"
	case contract.TypeLease:
		return "Lease Agreement"
	case contract.TypeWarrant:
		return "Warrant Agreement"
	case contract.TypeRights:
		return "Rights Agreement"
	default:
		return "Securities Agreement"
	}
}
