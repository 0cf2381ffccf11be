package extract

import (
	"strings"

	"lexgraph/pkg/contract"
)

// Merge combines a generative outcome with the rule-based record for the
// same document. Generative fields win when non-empty; rule-based values
// fill the gaps. On a failed outcome the generative side is replaced by a
// fallback record before merging. The result is never nil.
func Merge(outcome Outcome, rule *contract.Record, text string) *contract.Record {
	if rule == nil {
		rule = &contract.Record{}
	}

	var rec *contract.Record
	switch outcome.Kind {
	case OutcomeOk:
		rec = outcome.Record
		if rec == nil {
			rec = FallbackRecord(text, rule.ContractType, nil)
		}
	case OutcomeSchemaError, OutcomeCallError:
		rec = FallbackRecord(text, rule.ContractType, outcome.Err)
	}

	if rec.Title == "" {
		rec.Title = rule.Title
	}
	if rec.ContractType == "" {
		rec.ContractType = rule.ContractType
	}
	if rec.ExecutionDate.IsZero() {
		rec.ExecutionDate = rule.ExecutionDate
	}
	if rec.ClosingDate.IsZero() {
		rec.ClosingDate = rule.ClosingDate
	}
	if rec.EffectivenessDate.IsZero() {
		rec.EffectivenessDate = rule.EffectivenessDate
	}
	if rec.TotalOfferingAmount == 0 {
		rec.TotalOfferingAmount = rule.TotalOfferingAmount
	}
	if len(rec.Parties) == 0 {
		rec.Parties = rule.Parties
	}
	if len(rec.Securities) == 0 {
		rec.Securities = rule.Securities
	}
	if len(rec.ClosingConditions) == 0 {
		rec.ClosingConditions = rule.ClosingConditions
	}
	if len(rec.Representations) == 0 {
		rec.Representations = rule.Representations
	}
	if rec.License == nil {
		rec.License = rule.License
	} else if rule.License != nil {
		mergeLicense(rec.License, rule.License)
	}
	if rec.GoverningLaw == "" {
		rec.GoverningLaw = rule.GoverningLaw
	}

	if rec.Summary == "" || strings.Contains(rec.Summary, fallbackMarker) {
		if s := Summarize(rec, text); s != "" {
			annotation := rec.Summary
			rec.Summary = s
			if annotation != "" {
				rec.Summary = s + " (" + annotation + ")"
			}
		}
	}

	return rec
}

func mergeLicense(dst, src *contract.License) {
	if dst.UpfrontPayment == 0 {
		dst.UpfrontPayment = src.UpfrontPayment
	}
	if dst.RoyaltyRate == 0 {
		dst.RoyaltyRate = src.RoyaltyRate
	}
	if dst.Exclusivity == contract.ExclusivityUnknown {
		dst.Exclusivity = src.Exclusivity
	}
	if dst.FieldOfUse == "" {
		dst.FieldOfUse = src.FieldOfUse
	}
	if len(dst.Patents) == 0 {
		dst.Patents = src.Patents
	}
	if len(dst.Products) == 0 {
		dst.Products = src.Products
	}
	if len(dst.Territories) == 0 {
		dst.Territories = src.Territories
	}
}
