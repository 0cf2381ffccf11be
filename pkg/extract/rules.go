package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lexgraph/pkg/contract"
)

// Scan windows, in characters from the start of the document. Execution
// dates and party recitals sit in the opening paragraphs; financial terms
// and conditions range further in.
const (
	dateWindow      = 3000
	partyWindow     = 2000
	amountWindow    = 5000
	conditionWindow = 8000

	maxConditions = 10
)

func window(text string, n int) string {
	if len(text) > n {
		return text[:n]
	}
	return text
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:executed|dated|effective|entered into)\s+(?:as\s+of\s+)?(?:on\s+)?([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)this\s+(\d{1,2})\w{0,2}\s+day\s+of\s+([A-Za-z]+),?\s+(\d{4})`),
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(?i)as\s+of\s+([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)made.*?(?:as\s+of\s+|on\s+)?([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
}

func extractExecutionDate(text string) contract.Date {
	win := window(text, dateWindow)

	for _, pattern := range datePatterns {
		m := pattern.FindStringSubmatch(win)
		if m == nil {
			continue
		}

		var raw string
		if len(m) == 4 {
			// "this 16th day of May, 2022" form
			raw = m[1] + " " + m[2] + " " + m[3]
		} else {
			raw = m[1]
		}

		if d, ok := contract.ParseDate(raw); ok {
			return d
		}
	}
	return ""
}

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)aggregate\s+purchase\s+price.*?\$\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)total\s+(?:offering|purchase\s+price).*?\$\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)purchase\s+price.*?is\s+\$\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)\$\s*([\d,]+(?:\.\d{2})?)\s*(?:million|mil)`),
	regexp.MustCompile(`(?i)consideration.*?\$\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)(?:for|is)\s+\$\s*([\d,]+(?:\.\d{2})?)`),
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func extractOfferingAmount(text string) float64 {
	win := window(text, amountWindow)

	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(win)
		if m == nil {
			continue
		}
		amount, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(m[0]), "mil") {
			amount *= 1_000_000
		}
		return amount
	}
	return 0
}

var (
	recitalPartyPattern = regexp.MustCompile(`(?i)(?:between|by and between)\s+([^,\n]+?),?\s+a\s+([^,\n]*?)\s+(?:corporation|company|llc|inc)`)
	entityNamePattern   = regexp.MustCompile(`([A-Z][A-Za-z\s&]+(?:Inc|LLC|Corporation|Corp)\.?)`)

	// Company names that mark the issuing side of this filing corpus.
	issuerVocabulary = []string{"abeona", "access", "therapeutics"}

	partyNameStopwords = []string{"pursuant", "whereas", "section", "agreement", "company agrees"}
)

func issuerName(name string) bool {
	lower := strings.ToLower(name)
	for _, term := range issuerVocabulary {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func sniffJurisdiction(entityInfo string) string {
	lower := strings.ToLower(entityInfo)
	switch {
	case strings.Contains(lower, "delaware"):
		return "Delaware"
	case strings.Contains(lower, "nevada"):
		return "Nevada"
	case strings.Contains(lower, "new york"):
		return "New York"
	}
	return ""
}

func sniffEntityType(entityInfo string) string {
	lower := strings.ToLower(entityInfo)
	switch {
	case strings.Contains(lower, "corp"):
		return "Corporation"
	case strings.Contains(lower, "llc"):
		return "LLC"
	}
	return ""
}

func extractParties(text string) []contract.Party {
	win := window(text, partyWindow)

	var parties []contract.Party
	seen := map[string]bool{}

	for _, m := range recitalPartyPattern.FindAllStringSubmatch(win, -1) {
		name := strings.TrimSpace(m[1])
		entityInfo := strings.TrimSpace(m[2])
		if seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		role := contract.RoleInvestor
		if issuerName(name) {
			role = contract.RoleIssuer
		}
		parties = append(parties, contract.Party{
			Name:         name,
			Role:         role,
			EntityType:   sniffEntityType(entityInfo),
			Jurisdiction: sniffJurisdiction(entityInfo),
		})
	}

	for _, m := range entityNamePattern.FindAllStringSubmatch(win, -1) {
		name := strings.TrimSpace(m[1])
		lower := strings.ToLower(name)
		if len(name) <= 5 || seen[lower] {
			continue
		}
		skip := false
		for _, stop := range partyNameStopwords {
			if strings.Contains(lower, stop) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		seen[lower] = true

		role := contract.RoleInvestor
		if issuerName(name) {
			role = contract.RoleIssuer
		}
		parties = append(parties, contract.Party{Name: name, Role: role})
	}

	return parties
}

var (
	commonStockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s+shares?\s+of\s+common\s+stock`),
		regexp.MustCompile(`(?i)common\s+stock.*?(\d{1,3}(?:,\d{3})*)\s+shares?`),
		regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s+shares?\s+of.*?common`),
	}
	preferredStockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s+shares?\s+of\s+preferred\s+stock`),
		regexp.MustCompile(`(?i)preferred\s+stock.*?(\d{1,3}(?:,\d{3})*)\s+shares?`),
		regexp.MustCompile(`(?i)series\s+[A-Z]\s+preferred.*?(\d{1,3}(?:,\d{3})*)\s+shares?`),
	}
	warrantPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s+warrants?`),
		regexp.MustCompile(`(?i)warrant.*?(\d{1,3}(?:,\d{3})*)`),
		regexp.MustCompile(`(?i)exercise.*?(\d{1,3}(?:,\d{3})*)\s+warrants?`),
	}
	exercisePricePattern = regexp.MustCompile(`(?i)exercise\s+price.*?\$\s*([\d,]+(?:\.\d{2})?)`)
	pricePerSharePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$\s*([\d,]+(?:\.\d{2})?)\s+per\s+share`),
		regexp.MustCompile(`(?i)purchase\s+price.*?\$\s*([\d,]+(?:\.\d{2})?)\s+per\s+share`),
		regexp.MustCompile(`(?i)price\s+of\s+\$\s*([\d,]+(?:\.\d{2})?)\s+per\s+share`),
	}
)

func parseCount(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func firstCount(win string, patterns []*regexp.Regexp) (int64, bool) {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(win); m != nil {
			if count, ok := parseCount(m[1]); ok {
				return count, true
			}
		}
	}
	return 0, false
}

func extractSecurities(text string) []contract.Security {
	win := window(text, amountWindow)

	var securities []contract.Security

	if count, ok := firstCount(win, commonStockPatterns); ok {
		securities = append(securities, contract.Security{
			Type:  contract.SecurityCommonStock,
			Count: count,
		})
	}
	if count, ok := firstCount(win, preferredStockPatterns); ok {
		securities = append(securities, contract.Security{
			Type:  contract.SecurityPreferredStock,
			Count: count,
		})
	}
	if count, ok := firstCount(win, warrantPatterns); ok {
		warrant := contract.Security{
			Type:  contract.SecurityWarrant,
			Count: count,
		}
		if m := exercisePricePattern.FindStringSubmatch(win); m != nil {
			if price, ok := parseAmount(m[1]); ok {
				warrant.ExercisePrice = price
			}
		}
		securities = append(securities, warrant)
	}

	// Per-share price binds to the most recently named security.
	for _, pattern := range pricePerSharePatterns {
		m := pattern.FindStringSubmatch(win)
		if m == nil {
			continue
		}
		if price, ok := parseAmount(m[1]); ok && len(securities) > 0 {
			securities[len(securities)-1].PricePerShare = price
		}
		break
	}

	return securities
}

var (
	conditionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)(?:conditions? precedent|closing conditions?).*?(?:includes?|are):?\s*([^.]*)`),
		regexp.MustCompile(`(?is)(?:subject to|contingent upon).*?([^.]*)`),
	}
	conditionSplitPattern = regexp.MustCompile(`[;,]\s*(?:\([a-z]\)|[0-9]+\.)`)

	// keyword in text -> canonical condition description
	wellKnownConditions = []struct {
		keyword     string
		description string
	}{
		{"due diligence", "completion of due diligence"},
		{"board approval", "board of directors approval"},
		{"shareholder approval", "shareholder approval"},
		{"regulatory approval", "regulatory approval"},
		{"sec approval", "SEC approval"},
		{"legal opinion", "delivery of legal opinion"},
		{"audit", "completion of audit"},
	}
)

func extractClosingConditions(text string) []string {
	win := window(text, conditionWindow)
	lower := strings.ToLower(text)

	var conditions []string
	seen := map[string]bool{}
	add := func(c string) {
		if seen[c] {
			return
		}
		seen[c] = true
		conditions = append(conditions, c)
	}

	for _, pattern := range conditionPatterns {
		for _, m := range pattern.FindAllStringSubmatch(win, -1) {
			for _, item := range conditionSplitPattern.Split(strings.TrimSpace(m[1]), -1) {
				item = strings.TrimSpace(item)
				if len(item) > 10 && len(item) < 200 {
					add(item)
				}
			}
		}
	}

	for _, known := range wellKnownConditions {
		if strings.Contains(lower, known.keyword) {
			add(known.description)
		}
	}

	if len(conditions) > maxConditions {
		conditions = conditions[:maxConditions]
	}
	return conditions
}

// RuleExtract runs the deterministic extractors over the document text and
// returns a record with whatever they matched. It never fails; fields with
// no match stay zero.
func RuleExtract(text string) *contract.Record {
	rec := &contract.Record{
		ContractType:        Classify(text),
		ExecutionDate:       extractExecutionDate(text),
		TotalOfferingAmount: extractOfferingAmount(text),
		Parties:             extractParties(text),
		Securities:          extractSecurities(text),
		ClosingConditions:   extractClosingConditions(text),
	}

	if rec.ContractType == contract.TypeLicense {
		rec.License = ruleExtractLicense(text)
		if rec.TotalOfferingAmount == 0 && rec.License != nil {
			rec.TotalOfferingAmount = rec.License.UpfrontPayment
		}
	}

	return rec
}

// formatAmount renders a dollar amount for summaries, with thousands
// separators and no cents.
func formatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return fmt.Sprintf("$%s", out)
}
