package domain

import "unicode"

// Language tags for extracted text. Documents in this pipeline are
// English or Hindi, and Hindi is written in Devanagari, so detection
// is script-based rather than statistical.
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

// devanagariThreshold is the fraction of letters that must be
// Devanagari for a text to count as Hindi. Legal documents mix scripts
// (English act names inside Hindi deeds), so the bar sits well below
// a majority.
const devanagariThreshold = 0.3

// DetectLanguage reports the dominant language of a text by script
// ratio. Empty or letterless text is treated as English.
func DetectLanguage(text string) string {
	var letters, devanagari int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Devanagari, r) {
			devanagari++
		}
	}
	if letters > 0 && float64(devanagari)/float64(letters) >= devanagariThreshold {
		return LanguageHindi
	}
	return LanguageEnglish
}
