package prompt

// Convenience lookups for the prompt IDs the service actually uses.

// NarrativePromptID is the credit-analysis narrative prompt.
const NarrativePromptID = "credit.narrative"

// GetNarrativePrompt returns the credit narrative template, or nil when the
// library was not loaded (callers fall back to the hardcoded prompt).
func GetNarrativePrompt() *PromptTemplate {
	pt, err := Get().GetPrompt(NarrativePromptID)
	if err != nil {
		return nil
	}
	return pt
}

// GetCreditPrompt returns a system prompt from the credit category by name.
func GetCreditPrompt(name string) (string, error) {
	return Get().GetSystemPrompt("credit." + name)
}
