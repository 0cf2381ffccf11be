// Package contract defines the structured record extracted from legal
// agreements. The jsonschema tags on Record drive the schema handed to
// generative backends for constrained output.
package contract

// ContractType is the closed classification a document resolves to.
type ContractType string

const (
	TypeSecuritiesPurchase ContractType = "securities_purchase"
	TypeLicense            ContractType = "license"
	TypeEmployment         ContractType = "employment"
	TypeSettlement         ContractType = "settlement"
	TypeLease              ContractType = "lease"
	TypeWarrant            ContractType = "warrant"
	TypeRights             ContractType = "rights"
	TypeGeneric            ContractType = "generic"
)

// PartyRole describes which side of the agreement a party sits on.
type PartyRole string

const (
	RoleIssuer    PartyRole = "issuer"
	RoleInvestor  PartyRole = "investor"
	RoleLicensor  PartyRole = "licensor"
	RoleLicensee  PartyRole = "licensee"
	RoleEmployer  PartyRole = "employer"
	RoleEmployee  PartyRole = "employee"
	RoleLandlord  PartyRole = "landlord"
	RoleTenant    PartyRole = "tenant"
	RoleUnknown   PartyRole = "party"
)

// SecurityType enumerates instruments named in purchase agreements.
type SecurityType string

const (
	SecurityCommonStock    SecurityType = "common_stock"
	SecurityPreferredStock SecurityType = "preferred_stock"
	SecurityWarrant        SecurityType = "warrant"
)

// ExclusivityType qualifies a license grant.
type ExclusivityType string

const (
	ExclusivityExclusive    ExclusivityType = "exclusive"
	ExclusivityNonExclusive ExclusivityType = "non_exclusive"
	ExclusivityUnknown      ExclusivityType = ""
)

// Party is a named participant in the agreement.
type Party struct {
	Name         string    `json:"name" jsonschema_description:"Full legal name of the party as written in the agreement"`
	Role         PartyRole `json:"role" jsonschema_description:"Role of the party, e.g. issuer, investor, licensor, licensee"`
	EntityType   string    `json:"entity_type,omitempty" jsonschema_description:"Corporate form if stated, e.g. corporation, LLC, limited partnership"`
	Jurisdiction string    `json:"jurisdiction,omitempty" jsonschema_description:"State or country of incorporation if stated"`
}

// Security is an instrument sold or granted under the agreement.
type Security struct {
	Type          SecurityType `json:"type" jsonschema_description:"Instrument type: common_stock, preferred_stock or warrant"`
	Count         int64        `json:"count,omitempty" jsonschema_description:"Number of shares or warrants, as a bare integer"`
	PricePerShare float64      `json:"price_per_share,omitempty" jsonschema_description:"Per-share purchase price in dollars, bare number"`
	ExercisePrice float64      `json:"exercise_price,omitempty" jsonschema_description:"Warrant exercise price in dollars, bare number"`
}

// License carries the fields specific to license agreements.
type License struct {
	UpfrontPayment float64         `json:"upfront_payment,omitempty" jsonschema_description:"Upfront or initial license payment in dollars, bare number"`
	RoyaltyRate    float64         `json:"royalty_rate,omitempty" jsonschema_description:"Royalty rate as a percentage, bare number, e.g. 4.5"`
	Exclusivity    ExclusivityType `json:"exclusivity,omitempty" jsonschema_description:"exclusive or non_exclusive if the grant states it"`
	FieldOfUse     string          `json:"field_of_use,omitempty" jsonschema_description:"Field of use restriction if stated"`
	Patents        []string        `json:"patents,omitempty" jsonschema_description:"Patent or application numbers covered by the license"`
	Products       []string        `json:"products,omitempty" jsonschema_description:"Licensed product names"`
	Territories    []string        `json:"territories,omitempty" jsonschema_description:"Territories covered by the grant, e.g. worldwide, United States"`
}

// Record is the merged structured extraction of a single contract document.
type Record struct {
	Title        string       `json:"title" jsonschema_description:"Title of the agreement as written on the document"`
	ContractType ContractType `json:"contract_type" jsonschema_description:"One of: securities_purchase, license, employment, settlement, lease, warrant, rights, generic"`
	Summary      string       `json:"summary" jsonschema_description:"Two to three sentence plain-language summary of the agreement"`

	ExecutionDate     Date `json:"execution_date,omitempty" jsonschema_description:"Date the agreement was signed, YYYY-MM-DD"`
	ClosingDate       Date `json:"closing_date,omitempty" jsonschema_description:"Closing date if stated, YYYY-MM-DD"`
	EffectivenessDate Date `json:"effectiveness_date,omitempty" jsonschema_description:"Effectiveness date if distinct from execution, YYYY-MM-DD"`

	TotalOfferingAmount float64 `json:"total_offering_amount,omitempty" jsonschema_description:"Total offering or purchase amount in dollars, bare number"`

	Parties    []Party    `json:"parties,omitempty" jsonschema_description:"All named parties to the agreement"`
	Securities []Security `json:"securities,omitempty" jsonschema_description:"Securities sold or granted under the agreement"`
	License    *License   `json:"license,omitempty" jsonschema_description:"License-specific terms, only for license agreements"`

	ClosingConditions  []string `json:"closing_conditions,omitempty" jsonschema_description:"Conditions precedent to closing"`
	Representations    []string `json:"representations,omitempty" jsonschema_description:"Key representations and warranties"`
	RegistrationRights bool     `json:"registration_rights,omitempty" jsonschema_description:"True if the agreement grants registration rights"`
	ResaleRestrictions bool     `json:"resale_restrictions,omitempty" jsonschema_description:"True if resale of the securities is restricted"`

	GoverningLaw string `json:"governing_law,omitempty" jsonschema_description:"Governing law jurisdiction, e.g. Delaware, New York"`

	SourcePath string `json:"-"`
}

// Counterparties returns the party names excluding unknown-role placeholders,
// for summary construction.
func (r *Record) Counterparties() []string {
	names := make([]string, 0, len(r.Parties))
	for _, p := range r.Parties {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}
