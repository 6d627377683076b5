// Package skills finds known skill names in free text.
package skills

import (
	"strings"

	"github.com/jonathan/ats-matcher/internal/catalog"
)

// Extract returns the canonical catalog skills mentioned in text.
//
// Matching is a case-insensitive substring test against every skill of every role,
// walked in catalog order. Each skill is reported once, in the order it was first
// reached. There is no tokenization, so "Java" is found inside "JavaScript" and
// "R" inside almost anything.
func Extract(cat *catalog.Catalog, text string) []string {
	if cat == nil || text == "" {
		return []string{}
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	found := []string{}

	for _, role := range cat.Roles {
		for _, skill := range role.Skills {
			if seen[skill] {
				continue
			}
			if strings.Contains(lower, strings.ToLower(skill)) {
				seen[skill] = true
				found = append(found, skill)
			}
		}
	}
	return found
}
