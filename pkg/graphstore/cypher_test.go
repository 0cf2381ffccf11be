package graphstore

import (
	"strings"
	"testing"

	"lexgraph/pkg/contract"
)

func TestBuildContractParams(t *testing.T) {
	rec := &contract.Record{
		Title:               "Securities Purchase Agreement",
		ContractType:        contract.TypeSecuritiesPurchase,
		Summary:             "Securities purchase agreement between issuer and investor.",
		ExecutionDate:       "2022-05-16",
		TotalOfferingAmount: 5000000,
		GoverningLaw:        "Delaware",
		SourcePath:          "/data/2022/spa.html",
	}

	params := buildContractParams(rec)

	if params["title"] != "Securities Purchase Agreement" {
		t.Fatalf("title = %v", params["title"])
	}
	if params["execution_date"] != "2022-05-16" {
		t.Fatalf("execution_date = %v", params["execution_date"])
	}
	if params["closing_date"] != nil {
		t.Fatalf("zero date must map to nil, got %v", params["closing_date"])
	}
	if params["total_offering_amount"] != 5000000.0 {
		t.Fatalf("total_offering_amount = %v", params["total_offering_amount"])
	}
	if params["upfront_payment"] != nil {
		t.Fatalf("license fields must be nil without a license, got %v", params["upfront_payment"])
	}
}

func TestBuildContractParamsLicense(t *testing.T) {
	rec := &contract.Record{
		Title:        "License Agreement",
		ContractType: contract.TypeLicense,
		License: &contract.License{
			UpfrontPayment: 250000,
			RoyaltyRate:    4.5,
			Exclusivity:    contract.ExclusivityExclusive,
			FieldOfUse:     "therapeutics",
		},
	}

	params := buildContractParams(rec)

	if params["upfront_payment"] != 250000.0 {
		t.Fatalf("upfront_payment = %v", params["upfront_payment"])
	}
	if params["royalty_rate"] != 4.5 {
		t.Fatalf("royalty_rate = %v", params["royalty_rate"])
	}
	if params["exclusivity"] != "exclusive" {
		t.Fatalf("exclusivity = %v", params["exclusivity"])
	}
}

func TestBuildSecurityParams(t *testing.T) {
	params := buildSecurityParams([]contract.Security{
		{Type: contract.SecurityCommonStock, Count: 3333334, PricePerShare: 1.50},
		{Type: contract.SecurityWarrant, Count: 500000, ExercisePrice: 2.25},
	})

	if len(params) != 2 {
		t.Fatalf("got %d security maps, want 2", len(params))
	}
	if params[0]["security_type"] != "common_stock" {
		t.Fatalf("security_type = %v", params[0]["security_type"])
	}
	if params[0]["number_of_shares"] != int64(3333334) {
		t.Fatalf("number_of_shares = %v", params[0]["number_of_shares"])
	}
	if params[0]["exercise_price"] != nil {
		t.Fatalf("zero exercise price must map to nil, got %v", params[0]["exercise_price"])
	}
	if params[1]["exercise_price"] != 2.25 {
		t.Fatalf("warrant exercise_price = %v", params[1]["exercise_price"])
	}
}

func TestRelationshipForRole(t *testing.T) {
	tests := []struct {
		role contract.PartyRole
		want string
	}{
		{contract.RoleLicensor, "IS_LICENSOR_OF"},
		{contract.RoleLicensee, "IS_LICENSEE_OF"},
		{contract.RoleIssuer, "PARTY_TO"},
		{contract.RoleInvestor, "PARTY_TO"},
		{contract.RoleUnknown, "PARTY_TO"},
	}
	for _, tt := range tests {
		if got := relationshipForRole(tt.role); got != tt.want {
			t.Fatalf("relationshipForRole(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestUpsertPartyCypher(t *testing.T) {
	got := upsertPartyCypher(contract.RoleLicensor)
	if !strings.Contains(got, "MERGE (p)-[:IS_LICENSOR_OF]->(c)") {
		t.Fatalf("licensor statement missing role edge:\n%s", got)
	}
	if !strings.Contains(got, "MERGE (p:Party {name: $name})") {
		t.Fatalf("party must merge by name:\n%s", got)
	}
}

func TestUpsertCypherShapes(t *testing.T) {
	if !strings.Contains(upsertContractCypher, "MERGE (c:Contract {title: $title})") {
		t.Fatalf("contract statement must merge by title")
	}
	if !strings.Contains(upsertContractCypher, "date($execution_date)") {
		t.Fatalf("execution date must be stored as a Cypher date")
	}
	if !strings.Contains(upsertPatentsCypher, "MERGE (p:Patent {patent_number: number})") {
		t.Fatalf("patents must merge by patent_number")
	}
	if !strings.Contains(replaceSecuritiesCypher, "DETACH DELETE old") {
		t.Fatalf("securities must be replaced, not accumulated")
	}
}
