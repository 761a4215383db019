package domain

import "fmt"

// Feature identifies a downstream consumer of retrieved context.
type Feature int

const (
	// FeatureChat is the conversational Q&A assistant.
	FeatureChat Feature = iota

	// FeatureCaseLaw is case-law retrieval and summarisation.
	FeatureCaseLaw

	// FeatureCost is legal cost estimation.
	FeatureCost
)

// String returns the feature tag.
func (f Feature) String() string {
	switch f {
	case FeatureChat:
		return "chat"
	case FeatureCaseLaw:
		return "caselaw"
	case FeatureCost:
		return "cost"
	default:
		return "unknown"
	}
}

// ParseFeature parses a feature tag. Handling is exhaustive: anything
// outside the three known tags is rejected.
func ParseFeature(s string) (Feature, error) {
	switch s {
	case "chat":
		return FeatureChat, nil
	case "caselaw":
		return FeatureCaseLaw, nil
	case "cost":
		return FeatureCost, nil
	default:
		return FeatureChat, fmt.Errorf("%w: feature %q", ErrInvalidInput, s)
	}
}
