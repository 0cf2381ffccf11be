package query

import (
	"fmt"
	"strings"
)

// collectionKeys maps each collected column onto the natural key a real
// entry must carry. OPTIONAL MATCH with no match collects a map of nulls;
// those placeholders are dropped here.
var collectionKeys = map[string]string{
	"parties":     "name",
	"securities":  "security_type",
	"patents":     "patent_number",
	"products":    "name",
	"territories": "name",
}

func cleanRows(raw []map[string]any) Rows {
	rows := make(Rows, 0, len(raw))
	for _, row := range raw {
		for column, key := range collectionKeys {
			entries, ok := row[column].([]any)
			if !ok {
				continue
			}
			kept := make([]any, 0, len(entries))
			for _, entry := range entries {
				m, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				if v, ok := m[key].(string); ok && v != "" {
					kept = append(kept, m)
				}
			}
			row[column] = kept
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatRows renders retrieved contracts as a numbered plain-text listing.
// This is both the narration context handed to the model and the degraded
// output when narration fails.
func FormatRows(rows Rows) string {
	var sb strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, stringField(row, "title"))

		if v := stringField(row, "contract_type"); v != "" {
			fmt.Fprintf(&sb, "   Type: %s\n", v)
		}
		if v := stringField(row, "summary"); v != "" {
			fmt.Fprintf(&sb, "   Summary: %s\n", v)
		}
		if v := row["execution_date"]; v != nil {
			fmt.Fprintf(&sb, "   Executed: %v\n", v)
		}
		if v, ok := row["total_offering_amount"].(float64); ok && v > 0 {
			fmt.Fprintf(&sb, "   Offering amount: $%.0f\n", v)
		}
		if v, ok := row["upfront_payment"].(float64); ok && v > 0 {
			fmt.Fprintf(&sb, "   Upfront payment: $%.0f\n", v)
		}
		if v, ok := row["royalty_rate"].(float64); ok && v > 0 {
			fmt.Fprintf(&sb, "   Royalty rate: %.2f%%\n", v)
		}
		if v := stringField(row, "exclusivity"); v != "" {
			fmt.Fprintf(&sb, "   Exclusivity: %s\n", v)
		}
		if v := stringField(row, "governing_law"); v != "" {
			fmt.Fprintf(&sb, "   Governing law: %s\n", v)
		}

		if names := entryValues(row, "parties", "name"); len(names) > 0 {
			fmt.Fprintf(&sb, "   Parties: %s\n", strings.Join(names, ", "))
		}
		if numbers := entryValues(row, "patents", "patent_number"); len(numbers) > 0 {
			fmt.Fprintf(&sb, "   Patents: %s\n", strings.Join(numbers, ", "))
		}
		if names := entryValues(row, "territories", "name"); len(names) > 0 {
			fmt.Fprintf(&sb, "   Territories: %s\n", strings.Join(names, ", "))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func stringField(row map[string]any, key string) string {
	v, _ := row[key].(string)
	return v
}

func entryValues(row map[string]any, column, key string) []string {
	entries, ok := row[column].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if m, ok := entry.(map[string]any); ok {
			if v, ok := m[key].(string); ok && v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
