package normaliser

import (
	"regexp"
	"sort"
	"strings"
)

// Entity tagging for legal text. Tags feed the retriever's
// entity-overlap scoring, so they are normalised to lower case and
// deduplicated for stable comparison.

var (
	// actRef matches statute references ("Indian Contract Act, 1872",
	// "Consumer Protection Act").
	actRef = regexp.MustCompile(`\b[A-Z][a-z]+(?: (?:[A-Z][a-z]+|of|and))* Act(?:, ?\d{4})?\b|\bConstitution of India\b`)

	// sectionRef matches section and article references.
	sectionRef = regexp.MustCompile(`(?i)\b(?:section|article|§)\s*\d+(?:\([a-z0-9]+\))?`)

	// dateRef matches common date formats.
	dateRef = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{1,2} (?:January|February|March|April|May|June|July|August|September|October|November|December),? \d{4}\b|\b(?:January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2},? \d{4}\b`)

	// clauseRef matches boilerplate clause openers that identify the
	// legal function of a sentence.
	clauseRef = regexp.MustCompile(`(?i)\b(whereas|provided that|notwithstanding|subject to|in witness whereof|indemnity|indemnities|termination|jurisdiction|force majeure|consideration|arbitration)\b`)
)

// Tag extracts entity tags from a piece of text. The result is sorted
// and deduplicated so identical input always yields identical tags.
func Tag(text string) []string {
	seen := make(map[string]struct{})

	for _, m := range actRef.FindAllString(text, -1) {
		seen["act:"+canonical(m)] = struct{}{}
	}
	for _, m := range sectionRef.FindAllString(text, -1) {
		seen["section:"+canonical(m)] = struct{}{}
	}
	for _, m := range dateRef.FindAllString(text, -1) {
		seen["date:"+canonical(m)] = struct{}{}
	}
	for _, m := range clauseRef.FindAllString(text, -1) {
		seen["clause:"+canonical(m)] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Tagger adapts Tag to the driven.EntityTagger interface.
type Tagger struct{}

// Tag extracts entity tags from a piece of text.
func (Tagger) Tag(text string) []string {
	return Tag(text)
}

// canonical lowercases and collapses inner whitespace.
func canonical(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
