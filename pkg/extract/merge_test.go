package extract

import (
	"errors"
	"strings"
	"testing"

	"lexgraph/pkg/contract"
)

func TestMerge_GenerativeWins(t *testing.T) {
	gen := &contract.Record{
		Title:               "Securities Purchase Agreement",
		ContractType:        contract.TypeSecuritiesPurchase,
		Summary:             "Model summary of the deal.",
		ExecutionDate:       "2022-05-16",
		TotalOfferingAmount: 5000000,
		Parties:             []contract.Party{{Name: "Abeona Therapeutics Inc", Role: contract.RoleIssuer}},
	}
	rule := &contract.Record{
		ContractType:        contract.TypeGeneric,
		ExecutionDate:       "2021-01-01",
		TotalOfferingAmount: 999,
		Parties:             []contract.Party{{Name: "Rule Corp", Role: contract.RoleInvestor}},
	}

	got := Merge(Ok(gen), rule, "")

	if got.ExecutionDate != "2022-05-16" {
		t.Fatalf("execution date = %q, generative should win", got.ExecutionDate)
	}
	if got.TotalOfferingAmount != 5000000 {
		t.Fatalf("amount = %v, generative should win", got.TotalOfferingAmount)
	}
	if len(got.Parties) != 1 || got.Parties[0].Name != "Abeona Therapeutics Inc" {
		t.Fatalf("parties = %+v, generative should win", got.Parties)
	}
	if got.Summary != "Model summary of the deal." {
		t.Fatalf("summary = %q", got.Summary)
	}
}

func TestMerge_RuleFillsGaps(t *testing.T) {
	gen := &contract.Record{
		Title:        "Securities Purchase Agreement",
		ContractType: contract.TypeSecuritiesPurchase,
		Summary:      "Model summary.",
	}
	rule := &contract.Record{
		ExecutionDate:       "2022-05-16",
		TotalOfferingAmount: 5000000,
		Parties:             []contract.Party{{Name: "Rule Corp", Role: contract.RoleInvestor}},
		Securities:          []contract.Security{{Type: contract.SecurityCommonStock, Count: 100}},
		ClosingConditions:   []string{"board of directors approval"},
	}

	got := Merge(Ok(gen), rule, "")

	if got.ExecutionDate != "2022-05-16" {
		t.Fatalf("execution date = %q, rule should fill", got.ExecutionDate)
	}
	if got.TotalOfferingAmount != 5000000 {
		t.Fatalf("amount = %v, rule should fill", got.TotalOfferingAmount)
	}
	if len(got.Parties) != 1 || got.Parties[0].Name != "Rule Corp" {
		t.Fatalf("parties = %+v, rule should fill", got.Parties)
	}
	if len(got.Securities) != 1 || len(got.ClosingConditions) != 1 {
		t.Fatalf("securities/conditions not filled: %+v", got)
	}
}

func TestMerge_FallbackOnCallError(t *testing.T) {
	text := "THIS SECURITIES PURCHASE AGREEMENT is made between Abeona Therapeutics Inc, " +
		"a Delaware corporation, and the investors named herein."
	rule := RuleExtract(text)

	got := Merge(CallError(errors.New("connection refused")), rule, text)

	if got == nil {
		t.Fatal("Merge() returned nil")
	}
	if got.Title == "" {
		t.Fatal("fallback record has no title")
	}
	if got.ContractType != contract.TypeSecuritiesPurchase {
		t.Fatalf("type = %q", got.ContractType)
	}
	if len(got.Parties) == 0 {
		t.Fatal("fallback lost rule-extracted parties")
	}
	// regenerated summary keeps the failure annotation
	if !strings.Contains(got.Summary, fallbackMarker) {
		t.Fatalf("summary %q lost the failure annotation", got.Summary)
	}
}

func TestMerge_SummaryRegenerated(t *testing.T) {
	gen := &contract.Record{
		Title:               "Securities Purchase Agreement",
		ContractType:        contract.TypeSecuritiesPurchase,
		ExecutionDate:       "2022-05-16",
		TotalOfferingAmount: 5000000,
		Parties: []contract.Party{
			{Name: "Abeona Therapeutics Inc", Role: contract.RoleIssuer},
			{Name: "Great Point Partners LLC", Role: contract.RoleInvestor},
		},
	}

	got := Merge(Ok(gen), &contract.Record{}, "")

	if got.Summary == "" {
		t.Fatal("empty summary was not regenerated")
	}
	if !strings.Contains(got.Summary, "Abeona Therapeutics Inc") ||
		!strings.Contains(got.Summary, "$5,000,000") ||
		!strings.Contains(got.Summary, "2022-05-16") {
		t.Fatalf("regenerated summary missing fields: %q", got.Summary)
	}
}

func TestMerge_LicenseFieldsMerged(t *testing.T) {
	gen := &contract.Record{
		Title:        "License Agreement",
		ContractType: contract.TypeLicense,
		Summary:      "Model summary.",
		License: &contract.License{
			RoyaltyRate: 4.5,
		},
	}
	rule := &contract.Record{
		ContractType: contract.TypeLicense,
		License: &contract.License{
			RoyaltyRate:    9.9,
			UpfrontPayment: 250000,
			Patents:        []string{"9,876,543"},
		},
	}

	got := Merge(Ok(gen), rule, "")

	if got.License.RoyaltyRate != 4.5 {
		t.Fatalf("royalty = %v, generative should win", got.License.RoyaltyRate)
	}
	if got.License.UpfrontPayment != 250000 {
		t.Fatalf("upfront = %v, rule should fill", got.License.UpfrontPayment)
	}
	if len(got.License.Patents) != 1 {
		t.Fatalf("patents = %+v, rule should fill", got.License.Patents)
	}
}
