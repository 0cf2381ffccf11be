package extract

import (
	"fmt"
	"regexp"
	"strings"

	"lexgraph/pkg/contract"
)

var agreementTitlePattern = regexp.MustCompile(`(?i)([A-Z][A-Za-z\s]*AGREEMENT[A-Za-z\s]*)`)

// Summarize builds a one-sentence summary from the populated record fields,
// falling back to a text-derived heuristic when too few fields are set.
func Summarize(rec *contract.Record, text string) string {
	if rec.ContractType == contract.TypeLicense && rec.License != nil {
		return summarizeLicense(rec)
	}

	var parts []string

	parts = append(parts, titleForType(rec.ContractType))

	if len(rec.Parties) > 0 {
		issuer := partyByRole(rec.Parties, contract.RoleIssuer)
		investor := partyByRole(rec.Parties, contract.RoleInvestor)
		switch {
		case issuer != "" && investor != "":
			parts = append(parts, fmt.Sprintf("between %s and %s", issuer, investor))
		default:
			names := rec.Counterparties()
			if len(names) > 2 {
				names = names[:2]
			}
			if len(names) > 0 {
				parts = append(parts, "between "+strings.Join(names, " and "))
			}
		}
	}

	if rec.TotalOfferingAmount > 0 {
		parts = append(parts, "for "+formatAmount(rec.TotalOfferingAmount))
	}

	if len(rec.Securities) > 0 {
		seen := map[contract.SecurityType]bool{}
		var types []string
		for _, s := range rec.Securities {
			if s.Type != "" && !seen[s.Type] {
				seen[s.Type] = true
				types = append(types, string(s.Type))
			}
		}
		if len(types) > 0 {
			parts = append(parts, "involving "+strings.Join(types, ", "))
		}
	}

	if !rec.ExecutionDate.IsZero() {
		parts = append(parts, "executed on "+string(rec.ExecutionDate))
	}

	if len(parts) >= 2 {
		return strings.Join(parts, " ") + "."
	}

	// Too little structure; fall back to the document's own heading.
	snippet := strings.TrimSpace(strings.ReplaceAll(window(text, 500), "\n", " "))
	if m := agreementTitlePattern.FindStringSubmatch(snippet); m != nil {
		return strings.TrimSpace(m[1]) + " with extracted party and financial information."
	}

	s := fmt.Sprintf("Securities contract with %d parties", len(rec.Parties))
	if rec.TotalOfferingAmount > 0 {
		s += " involving " + formatAmount(rec.TotalOfferingAmount)
	}
	return s + "."
}

func summarizeLicense(rec *contract.Record) string {
	var parts []string

	switch rec.License.Exclusivity {
	case contract.ExclusivityExclusive:
		parts = append(parts, "Exclusive License Agreement")
	case contract.ExclusivityNonExclusive:
		parts = append(parts, "Non-Exclusive License Agreement")
	default:
		parts = append(parts, "License Agreement")
	}

	licensor := partyByRole(rec.Parties, contract.RoleLicensor)
	licensee := partyByRole(rec.Parties, contract.RoleLicensee)
	if licensor == "" {
		licensor = partyByRole(rec.Parties, contract.RoleIssuer)
	}
	if licensee == "" {
		licensee = partyByRole(rec.Parties, contract.RoleInvestor)
	}
	if licensor != "" && licensee != "" {
		parts = append(parts, fmt.Sprintf("between %s (licensor) and %s (licensee)", licensor, licensee))
	}

	if len(rec.License.Patents) > 0 {
		patents := rec.License.Patents
		if len(patents) > 2 {
			patents = patents[:2]
		}
		parts = append(parts, "covering patents "+strings.Join(patents, ", "))
	}
	if rec.License.FieldOfUse != "" {
		parts = append(parts, "for "+rec.License.FieldOfUse)
	}
	if len(rec.License.Territories) > 0 {
		parts = append(parts, "in "+rec.License.Territories[0])
	}

	var financial []string
	if rec.License.UpfrontPayment > 0 {
		financial = append(financial, formatAmount(rec.License.UpfrontPayment)+" upfront")
	}
	if rec.License.RoyaltyRate > 0 {
		financial = append(financial, fmt.Sprintf("%g%% royalty", rec.License.RoyaltyRate))
	}
	if len(financial) > 0 {
		parts = append(parts, "with "+strings.Join(financial, " and "))
	}

	if !rec.ExecutionDate.IsZero() {
		parts = append(parts, "executed on "+string(rec.ExecutionDate))
	}

	if len(parts) >= 2 {
		return strings.Join(parts, " ") + "."
	}
	return "License agreement for intellectual property rights between parties."
}

func partyByRole(parties []contract.Party, role contract.PartyRole) string {
	for _, p := range parties {
		if p.Role == role {
			return p.Name
		}
	}
	return ""
}
