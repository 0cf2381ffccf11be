// Package extract produces structured contract records from plain text, by
// deterministic rules and by schema-constrained generation, and merges the
// two by field precedence.
package extract

import (
	"strings"

	"lexgraph/pkg/contract"
)

// classifierRules are evaluated in order; the first rule with a matching
// keyword wins. License checks come before securities because license
// agreements routinely mention stock consideration.
var classifierRules = []struct {
	contractType contract.ContractType
	keywords     []string
}{
	{contract.TypeLicense, []string{"license agreement", "licensing", "intellectual property"}},
	{contract.TypeEmployment, []string{"employment agreement", "employment letter", "letter agreement"}},
	{contract.TypeSettlement, []string{"settlement agreement", "mutual release"}},
	{contract.TypeLease, []string{"lease agreement", "supplemental lease", "landlord", "tenant"}},
	{contract.TypeSecuritiesPurchase, []string{"securities purchase", "stock purchase", "investment agreement"}},
	{contract.TypeWarrant, []string{"warrant agreement", "warrant purchase"}},
	{contract.TypeRights, []string{"rights agreement", "investor rights"}},
}

// Classify resolves a document to one of the closed contract types by an
// ordered keyword scan. Text that matches no rule is TypeGeneric.
func Classify(text string) contract.ContractType {
	lower := strings.ToLower(text)

	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.contractType
			}
		}
	}
	return contract.TypeGeneric
}
