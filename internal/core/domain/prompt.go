package domain

// Prompt is a fully assembled, budget-bounded model request.
type Prompt struct {
	// Feature identifies the consumer the prompt was assembled for.
	Feature Feature

	// System is the feature instruction text.
	System string

	// Text is the combined context + history + query body.
	Text string

	// MaxTokens bounds the completion length.
	MaxTokens int

	// Temperature controls generation randomness.
	Temperature float64
}

// CaseReference is one structured case citation parsed from a case-law
// response.
type CaseReference struct {
	// Title is the case title (Party A versus Party B).
	Title string

	// Year is the decision year, when stated.
	Year string

	// Court is the deciding court, when stated.
	Court string

	// Summary is the key finding text.
	Summary string
}

// CostLineItem is one cost component in an estimate.
type CostLineItem struct {
	// Label names the component (lawyer fees, court fees, ...).
	Label string

	// Amount is the component text as stated by the model, kept verbatim
	// since ranges and currency formatting vary.
	Amount string
}

// CostEstimate is the structured output of the cost feature.
type CostEstimate struct {
	// BaselineINR is the rule-based baseline cost in INR that seeded the
	// prompt, independent of the model response.
	BaselineINR float64

	// LineItems are parsed cost components.
	LineItems []CostLineItem

	// Narrative is the full model response text.
	Narrative string
}

// Answer is the routed result of one Ask call.
type Answer struct {
	// Feature identifies the consumer that requested the answer.
	Feature Feature

	// Text is the response body.
	Text string

	// Cases holds parsed citations for caselaw answers.
	Cases []CaseReference

	// Cost holds the structured estimate for cost answers.
	Cost *CostEstimate

	// Attempts is the number of underlying model call attempts made.
	Attempts int

	// LastResortContext is true when retrieval fell back to the
	// document-order context.
	LastResortContext bool
}
