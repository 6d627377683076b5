package ats

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// normalizeText lower-cases text, turns punctuation into spaces and collapses whitespace.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(nonWord.ReplaceAllString(strings.ToLower(text), " ")), " ")
}

// document is normalized text prepared for whole-token phrase lookups.
type document struct {
	normalized string
	padded     string
}

func newDocument(text string) document {
	n := normalizeText(text)
	return document{normalized: n, padded: " " + n + " "}
}

// hasTerm reports whether term occurs as a run of whole tokens. The term is
// normalized the same way as the text, so "node.js" matches "Node.js" and
// "node js" but never "nodejs", and "java" does not match "javascript".
func (d document) hasTerm(term string) bool {
	t := normalizeText(term)
	if t == "" {
		return false
	}
	return strings.Contains(d.padded, " "+t+" ")
}

// contains is a plain substring test on the normalized text.
func (d document) contains(s string) bool {
	return strings.Contains(d.normalized, s)
}

// extractKeywords returns dictionary keywords and phrases present in d, in
// dictionary order. A variant from the skill hierarchy yields its canonical keyword.
func extractKeywords(d document) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}

	for _, group := range industryKeywords {
		for _, k := range group {
			if d.hasTerm(k) {
				add(k)
			}
		}
	}
	for _, p := range keywordPhrases {
		if d.hasTerm(p) {
			add(p)
		}
	}
	for _, h := range skillHierarchy {
		for _, v := range h.variants {
			if d.hasTerm(v) {
				add(h.canonical)
				break
			}
		}
	}
	return out
}

// extractSkills is extractKeywords restricted to the industry dictionary.
func extractSkills(d document) []string {
	var out []string
	for _, k := range extractKeywords(d) {
		if dictionary[k] {
			out = append(out, k)
		}
	}
	return out
}

// partition splits want into the terms found in have and the rest, keeping order.
func partition(want, have []string) (matched, missing []string) {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	matched, missing = []string{}, []string{}
	for _, w := range want {
		if set[w] {
			matched = append(matched, w)
		} else {
			missing = append(missing, w)
		}
	}
	return matched, missing
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
