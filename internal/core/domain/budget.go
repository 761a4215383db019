package domain

// charsPerToken is the estimation heuristic: roughly four characters of
// English text per model token. Retrieval, chunking and assembly all go
// through EstimateTokens so their budgets agree.
const charsPerToken = 4

// ContextBudget bounds how much retrieved context and history may be
// packed into one model call. It is a parameter, not persisted state.
type ContextBudget struct {
	// MaxContextTokens is the allowance for retrieved chunks.
	MaxContextTokens int

	// MaxHistoryTokens is the allowance for trimmed conversation history.
	MaxHistoryTokens int
}

// EstimateTokens estimates the token count of a text.
// Deterministic: identical input always yields the identical estimate.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// TokensToChars converts a token allowance to a character allowance
// under the same heuristic.
func TokensToChars(tokens int) int {
	return tokens * charsPerToken
}
