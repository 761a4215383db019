package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"english", "The lessee shall pay rent monthly in advance.", LanguageEnglish},
		{"hindi", "यह अनुबंध दोनों पक्षों के बीच किया गया है।", LanguageHindi},
		{"hindi with english act name", "भारतीय संविदा अधिनियम Indian Contract Act के अंतर्गत यह करार किया जाता है।", LanguageHindi},
		{"mostly english with a hindi word", "The parties agree that the word करार means agreement.", LanguageEnglish},
		{"empty", "", LanguageEnglish},
		{"digits only", "1234 5678", LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}
