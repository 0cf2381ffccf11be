package extract

import (
	"testing"

	"lexgraph/pkg/contract"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want contract.ContractType
	}{
		{"license beats securities", "This License Agreement also covers stock purchase rights", contract.TypeLicense},
		{"license via ip keyword", "Agreement concerning certain intellectual property", contract.TypeLicense},
		{"employment", "This Employment Agreement is entered into", contract.TypeEmployment},
		{"letter agreement", "This Letter Agreement confirms our offer", contract.TypeEmployment},
		{"settlement", "Settlement Agreement and Mutual Release", contract.TypeSettlement},
		{"lease via landlord", "between the Landlord and the occupant", contract.TypeLease},
		{"securities purchase", "THIS SECURITIES PURCHASE AGREEMENT", contract.TypeSecuritiesPurchase},
		{"warrant", "Warrant Agreement dated as of", contract.TypeWarrant},
		{"investor rights", "Investor Rights granted hereunder", contract.TypeRights},
		{"generic", "Miscellaneous notarial deed", contract.TypeGeneric},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.text); got != tc.want {
				t.Fatalf("Classify(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtractExecutionDate(t *testing.T) {
	cases := []struct {
		name string
		text string
		want contract.Date
	}{
		{"dated as of", "This Agreement, dated as of May 16, 2022, is entered", "2022-05-16"},
		{"executed on", "executed on March 1, 2021 by the parties", "2021-03-01"},
		{"day of form", "made this 16th day of May, 2022", "2022-05-16"},
		{"slash date", "signed 5/16/2022 at the offices", "2022-05-16"},
		{"iso date", "Effective 2022-05-16 per schedule", "2022-05-16"},
		{"no date", "This Agreement between the parties", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractExecutionDate(tc.text); got != tc.want {
				t.Fatalf("extractExecutionDate() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractOfferingAmount(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float64
	}{
		{"aggregate purchase price", "an aggregate purchase price of $5,000,000", 5000000},
		{"total offering", "the total offering of $2,500,000.00", 2500000},
		{"million multiplier", "in consideration the sum of $5 million", 5000000},
		{"no amount", "no consideration is payable", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractOfferingAmount(tc.text); got != tc.want {
				t.Fatalf("extractOfferingAmount() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractParties(t *testing.T) {
	text := "THIS AGREEMENT is made by and between Abeona Therapeutics Inc, a Delaware corporation, and Great Point Partners LLC, a Delaware llc, on the date hereof"

	parties := extractParties(text)
	if len(parties) < 2 {
		t.Fatalf("extractParties() found %d parties, want at least 2", len(parties))
	}

	first := parties[0]
	if first.Name != "Abeona Therapeutics Inc" {
		t.Fatalf("first party name = %q", first.Name)
	}
	if first.Role != contract.RoleIssuer {
		t.Fatalf("issuer-vocabulary name got role %q", first.Role)
	}
	if first.Jurisdiction != "Delaware" {
		t.Fatalf("first party jurisdiction = %q", first.Jurisdiction)
	}

	for _, p := range parties[1:] {
		if p.Name == "Great Point Partners LLC" && p.Role != contract.RoleInvestor {
			t.Fatalf("counterparty role = %q, want investor", p.Role)
		}
	}
}

func TestExtractSecurities(t *testing.T) {
	t.Run("price attaches to last security", func(t *testing.T) {
		text := "the purchase of 3,333,334 shares of common stock and 1,000,000 warrants at $1.50 per share"
		secs := extractSecurities(text)
		if len(secs) != 2 {
			t.Fatalf("extractSecurities() = %d securities, want 2", len(secs))
		}
		if secs[0].Type != contract.SecurityCommonStock || secs[0].Count != 3333334 {
			t.Fatalf("common stock = %+v", secs[0])
		}
		if secs[1].Type != contract.SecurityWarrant || secs[1].Count != 1000000 {
			t.Fatalf("warrant = %+v", secs[1])
		}
		if secs[0].PricePerShare != 0 || secs[1].PricePerShare != 1.50 {
			t.Fatalf("per-share price did not attach to last security: %+v", secs)
		}
	})

	t.Run("warrant exercise price", func(t *testing.T) {
		text := "500,000 warrants with an exercise price of $2.25 each"
		secs := extractSecurities(text)
		if len(secs) != 1 || secs[0].Type != contract.SecurityWarrant {
			t.Fatalf("extractSecurities() = %+v", secs)
		}
		if secs[0].ExercisePrice != 2.25 {
			t.Fatalf("exercise price = %v, want 2.25", secs[0].ExercisePrice)
		}
	})

	t.Run("preferred stock", func(t *testing.T) {
		text := "issue 250,000 shares of preferred stock to the investor"
		secs := extractSecurities(text)
		if len(secs) != 1 || secs[0].Type != contract.SecurityPreferredStock || secs[0].Count != 250000 {
			t.Fatalf("extractSecurities() = %+v", secs)
		}
	})
}

func TestExtractClosingConditions(t *testing.T) {
	text := "The closing is subject to completion of due diligence and board approval. " +
		"Regulatory approval and delivery of a legal opinion are further required."

	conditions := extractClosingConditions(text)
	if len(conditions) == 0 {
		t.Fatal("extractClosingConditions() found nothing")
	}
	if len(conditions) > maxConditions {
		t.Fatalf("conditions = %d, cap is %d", len(conditions), maxConditions)
	}

	joined := ""
	for _, c := range conditions {
		joined += c + "\n"
	}
	for _, want := range []string{"completion of due diligence", "board of directors approval", "regulatory approval", "delivery of legal opinion"} {
		found := false
		for _, c := range conditions {
			if c == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing canonical condition %q in:\n%s", want, joined)
		}
	}
}

func TestRuleExtract_SecuritiesAgreement(t *testing.T) {
	text := "THIS SECURITIES PURCHASE AGREEMENT, dated as of May 16, 2022, is made by and between " +
		"Abeona Therapeutics Inc, a Delaware corporation, and the Purchasers. " +
		"The aggregate purchase price is $5,000,000 for 3,333,334 shares of common stock at $1.50 per share. " +
		"The closing is subject to board approval."

	rec := RuleExtract(text)

	if rec.ContractType != contract.TypeSecuritiesPurchase {
		t.Fatalf("type = %q", rec.ContractType)
	}
	if rec.ExecutionDate != "2022-05-16" {
		t.Fatalf("execution date = %q", rec.ExecutionDate)
	}
	if rec.TotalOfferingAmount != 5000000 {
		t.Fatalf("amount = %v", rec.TotalOfferingAmount)
	}
	if len(rec.Parties) == 0 || rec.Parties[0].Role != contract.RoleIssuer {
		t.Fatalf("parties = %+v", rec.Parties)
	}
	if len(rec.Securities) != 1 || rec.Securities[0].Count != 3333334 || rec.Securities[0].PricePerShare != 1.50 {
		t.Fatalf("securities = %+v", rec.Securities)
	}
	if len(rec.ClosingConditions) == 0 {
		t.Fatal("no closing conditions")
	}
}

func TestRuleExtract_License(t *testing.T) {
	text := "This Exclusive License Agreement grants rights under U.S. Patent No. 9,876,543 " +
		"in the territory worldwide for the field of use human therapeutics, " +
		"with an upfront payment of $250,000 and a 4.5% royalty on net sales."

	rec := RuleExtract(text)

	if rec.ContractType != contract.TypeLicense {
		t.Fatalf("type = %q", rec.ContractType)
	}
	if rec.License == nil {
		t.Fatal("license fields missing")
	}
	if rec.License.RoyaltyRate != 4.5 {
		t.Fatalf("royalty = %v", rec.License.RoyaltyRate)
	}
	if rec.License.UpfrontPayment != 250000 {
		t.Fatalf("upfront = %v", rec.License.UpfrontPayment)
	}
	if len(rec.License.Patents) != 1 || rec.License.Patents[0] != "9,876,543" {
		t.Fatalf("patents = %+v", rec.License.Patents)
	}
	if len(rec.License.Territories) != 1 || rec.License.Territories[0] != "worldwide" {
		t.Fatalf("territories = %+v", rec.License.Territories)
	}
	if rec.License.Exclusivity != contract.ExclusivityExclusive {
		t.Fatalf("exclusivity = %q", rec.License.Exclusivity)
	}
	if rec.TotalOfferingAmount != 250000 {
		t.Fatalf("offering amount should fall back to upfront payment, got %v", rec.TotalOfferingAmount)
	}
}
