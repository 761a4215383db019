// Package normaliser cleans extracted text and segments it into
// sentences with entity tags for retrieval scoring.
package normaliser

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser cleans and segments extracted text.
type Normaliser struct{}

// New creates a new normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

var (
	// hyphenBreak matches a word split across a line break by a hyphen.
	hyphenBreak = regexp.MustCompile(`(\p{L})-[ \t]*\n[ \t]*(\p{L})`)

	// pageNumberLine matches a standalone number on its own line.
	pageNumberLine = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$`)

	// pageLabel matches "Page N" markers left by per-page extraction.
	pageLabel = regexp.MustCompile(`(?i)page[ \t]+\d+`)

	spaceRun   = regexp.MustCompile(`[ \t]+`)
	newlineRun = regexp.MustCompile(`\n{3,}`)

	// sentenceEnd matches a sentence terminator plus trailing whitespace.
	sentenceEnd = regexp.MustCompile(`[.!?]+[ \t\n]*`)
)

// ocrArtifacts maps common OCR misreads to their repairs.
var ocrArtifacts = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"—", "-", "–", "-",
	"０", "0",
	"|", "I",
)

// abbreviations expands common legal shorthand so lexical retrieval
// matches the expanded forms users type.
var abbreviations = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(?i)\bvs\.?\b`), "versus"},
	{regexp.MustCompile(`(?i)\bv/s\b`), "versus"},
	{regexp.MustCompile(`(?i)\bsec\.`), "section"},
	{regexp.MustCompile(`(?i)\bart\.`), "article"},
	{regexp.MustCompile(`(?i)\bpara\.`), "paragraph"},
	{regexp.MustCompile(`(?i)\bhon'?ble\b`), "Honorable"},
	{regexp.MustCompile(`\bIPC\b`), "Indian Penal Code"},
	{regexp.MustCompile(`\bCrPC\b`), "Code of Criminal Procedure"},
	{regexp.MustCompile(`\bCPC\b`), "Code of Civil Procedure"},
}

// Normalise cleans raw extracted text and segments it into sentences.
// It never fails: severely malformed input (binary garbage surviving
// extraction) yields an empty-but-valid result, since the upstream
// extraction failure is the authoritative failure signal.
func (n *Normaliser) Normalise(_ context.Context, raw string) (*domain.NormalisedText, error) {
	text := clean(raw)
	if !hasLetters(text) {
		return &domain.NormalisedText{}, nil
	}

	return &domain.NormalisedText{
		Text:       text,
		Sentences:  segment(text),
		KeyPhrases: KeyPhrases(text, maxKeyPhrases),
	}, nil
}

// maxKeyPhrases caps the phrases surfaced per document.
const maxKeyPhrases = 10

// clean runs the cleaning pipeline: Unicode canonicalisation, control
// character removal, hyphenation repair, OCR artifact repair, page
// number and repeated header/footer removal, abbreviation expansion,
// whitespace normalisation.
func clean(raw string) string {
	text := norm.NFC.String(strings.ToValidUTF8(raw, ""))
	text = stripControl(text)
	text = hyphenBreak.ReplaceAllString(text, "$1$2")
	text = ocrArtifacts.Replace(text)
	text = pageNumberLine.ReplaceAllString(text, "")
	text = pageLabel.ReplaceAllString(text, "")
	text = stripRepeatedLines(text)

	for _, a := range abbreviations {
		text = a.pattern.ReplaceAllString(text, a.repl)
	}

	text = spaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripControl removes control characters except newline and tab.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, s)
}

// stripRepeatedLines removes lines that repeat more than three times,
// which in scanned documents are almost always headers or footers.
func stripRepeatedLines(text string) string {
	lines := strings.Split(text, "\n")

	counts := make(map[string]int)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 5 && len(trimmed) < 100 {
			counts[trimmed]++
		}
	}

	kept := lines[:0]
	for _, line := range lines {
		if counts[strings.TrimSpace(line)] > 3 {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// hasLetters reports whether the text contains at least one letter.
func hasLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// segment splits cleaned text into sentence spans. Spans partition the
// text: each sentence extends through its trailing whitespace to the
// start of the next, so concatenating spans reconstructs the text.
func segment(text string) []domain.Sentence {
	if text == "" {
		return nil
	}

	var sentences []domain.Sentence
	start := 0
	for _, m := range sentenceEnd.FindAllStringIndex(text, -1) {
		end := m[1]
		if end <= start {
			continue
		}
		sentences = append(sentences, newSentence(text, start, end))
		start = end
	}
	if start < len(text) {
		sentences = append(sentences, newSentence(text, start, len(text)))
	}
	return sentences
}

func newSentence(text string, start, end int) domain.Sentence {
	return domain.Sentence{
		Start:    start,
		End:      end,
		Entities: Tag(text[start:end]),
	}
}
