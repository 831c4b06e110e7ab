package ai

// CategoryResult captures the structured output of the category classification call.
type CategoryResult struct {
	// Category is one of the fixed intent taxonomy values.
	Category string `json:"category"`

	// Confidence is the model's self-reported confidence in [0,1]. Advisory only.
	Confidence float64 `json:"confidence,omitempty"`
}
