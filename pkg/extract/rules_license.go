package extract

import (
	"regexp"
	"strconv"
	"strings"

	"lexgraph/pkg/contract"
)

var (
	royaltyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*%\s*royalty`),
		regexp.MustCompile(`(?i)royalty.*?(\d+(?:\.\d+)?)\s*percent`),
		regexp.MustCompile(`(?i)royalty rate.*?(\d+(?:\.\d+)?)\s*%`),
	}
	upfrontPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)upfront.*?payment.*?\$\s*([\d,]+(?:\.\d{2})?)`),
		regexp.MustCompile(`(?i)initial.*?payment.*?\$\s*([\d,]+(?:\.\d{2})?)`),
		regexp.MustCompile(`(?i)upon.*?execution.*?\$\s*([\d,]+(?:\.\d{2})?)`),
	}
	patentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Patent No\.|U\.S\. Patent No\.|Patent Number)\s*([0-9,]+)`),
		regexp.MustCompile(`(?i)patent application.*?([0-9/,]+)`),
	}
	territoryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)territory.*?(worldwide|global)`),
		regexp.MustCompile(`(?i)territory.*?(United States|U\.S\.|USA)`),
		regexp.MustCompile(`(?i)exclusively.*?(worldwide|global|United States)`),
	}
	fieldOfUsePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)field of use.*?(human therapeutics?|therapeutic)`),
		regexp.MustCompile(`(?i)indication.*?(cancer|oncology|rare disease)`),
		regexp.MustCompile(`(?i)treatment of.*?([A-Za-z\s]+disease)`),
	}
)

// ruleExtractLicense pulls license-specific terms out of the text. A nil
// result means none of the license patterns matched.
func ruleExtractLicense(text string) *contract.License {
	win := window(text, amountWindow)
	ipWin := window(text, dateWindow)

	lic := &contract.License{}
	matched := false

	for _, pattern := range royaltyPatterns {
		if m := pattern.FindStringSubmatch(win); m != nil {
			if rate, err := strconv.ParseFloat(m[1], 64); err == nil {
				lic.RoyaltyRate = rate
				matched = true
				break
			}
		}
	}

	for _, pattern := range upfrontPatterns {
		if m := pattern.FindStringSubmatch(win); m != nil {
			if amount, ok := parseAmount(m[1]); ok {
				lic.UpfrontPayment = amount
				matched = true
				break
			}
		}
	}

	seen := map[string]bool{}
	for _, pattern := range patentPatterns {
		for _, m := range pattern.FindAllStringSubmatch(ipWin, -1) {
			num := strings.TrimSpace(m[1])
			if num != "" && !seen[num] {
				seen[num] = true
				lic.Patents = append(lic.Patents, num)
				matched = true
			}
		}
	}

	for _, pattern := range territoryPatterns {
		if m := pattern.FindStringSubmatch(ipWin); m != nil {
			lic.Territories = []string{m[1]}
			matched = true
			break
		}
	}

	for _, pattern := range fieldOfUsePatterns {
		if m := pattern.FindStringSubmatch(ipWin); m != nil {
			lic.FieldOfUse = strings.TrimSpace(m[1])
			matched = true
			break
		}
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "non-exclusive"):
		lic.Exclusivity = contract.ExclusivityNonExclusive
		matched = true
	case strings.Contains(lower, "exclusive"):
		lic.Exclusivity = contract.ExclusivityExclusive
		matched = true
	}

	if !matched {
		return nil
	}
	return lic
}
