package normaliser

import (
	"sort"
	"strings"
	"unicode"
)

// Key phrase extraction: content-word n-grams ranked by frequency and
// length. A lightweight stand-in for noun-phrase chunking that works
// without a language model.

// maxPhraseWords caps candidate phrase length.
const maxPhraseWords = 3

// stopwords are function words that break phrase runs. Includes the
// boilerplate verbs of legal drafting that carry no topical content.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"a an the and or but of to in on at by for with from as is are was were be been being " +
			"this that these those it its he she they them his her their we you your i not no nor " +
			"shall will may must can could would should do does did have has had having if then " +
			"than so such any all each other same own both more most some under over between into " +
			"upon herein hereby hereof hereto thereof whereas aforesaid said per also only") {
		stopwords[w] = struct{}{}
	}
}

// KeyPhrases returns up to limit content phrases of the text, highest
// scoring first. A phrase scores its occurrence count times its word
// count, so a repeated pair beats its individual words; ties break
// towards longer phrases, then earlier first appearance, so the result
// is deterministic. Phrases overlapping a higher-ranked pick are
// suppressed.
func KeyPhrases(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	type entry struct {
		phrase string
		score  int
		words  int
		first  int
	}
	seen := make(map[string]*entry)

	pos := 0
	for _, run := range contentRuns(text) {
		for i := range run {
			for n := 1; n <= maxPhraseWords && i+n <= len(run); n++ {
				phrase := strings.Join(run[i:i+n], " ")
				if e, ok := seen[phrase]; ok {
					e.score += n
				} else {
					seen[phrase] = &entry{phrase: phrase, score: n, words: n, first: pos}
				}
				pos++
			}
		}
	}

	entries := make([]*entry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		if entries[i].words != entries[j].words {
			return entries[i].words > entries[j].words
		}
		return entries[i].first < entries[j].first
	})

	var phrases []string
	for _, e := range entries {
		if len(phrases) == limit {
			break
		}
		if overlapsAny(phrases, e.phrase) {
			continue
		}
		phrases = append(phrases, e.phrase)
	}
	return phrases
}

// contentRuns splits the text into runs of consecutive content words.
// Stopwords and very short tokens end a run.
func contentRuns(text string) [][]string {
	var runs [][]string
	var run []string
	flush := func() {
		if len(run) > 0 {
			runs = append(runs, run)
			run = nil
		}
	}
	for _, token := range tokenise(text) {
		if _, stop := stopwords[token]; stop || len([]rune(token)) < 3 {
			flush()
			continue
		}
		run = append(run, token)
	}
	flush()
	return runs
}

// overlapsAny reports whether the phrase shares a word-boundary
// substring relation with any already selected phrase.
func overlapsAny(selected []string, phrase string) bool {
	for _, s := range selected {
		if containsPhrase(s, phrase) || containsPhrase(phrase, s) {
			return true
		}
	}
	return false
}

func containsPhrase(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

// tokenise lowercases and splits on anything that is not a letter or
// digit.
func tokenise(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
