// Package narrative turns a completed statement analysis into a
// plain-language credit memo: a markdown summary plus a structured
// verdict the review workflow can act on.
package narrative

import "time"

// Verdict is the structured conclusion parsed out of the model response.
type Verdict struct {
	Rating     string   `json:"rating"` // strong, acceptable, watch, decline
	Strengths  []string `json:"strengths"`
	Risks      []string `json:"risks"`
	Conditions []string `json:"conditions"`
}

// Narrative is the full generated credit memo for one analysis.
type Narrative struct {
	ID          string    `json:"id"`
	AnalysisID  string    `json:"analysisId"`
	Summary     string    `json:"summary"` // markdown
	Verdict     Verdict   `json:"verdict"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// ValidRatings are the ratings the verdict parser accepts. Anything
// else is normalized to "watch" so a sloppy model response cannot
// silently upgrade a borrower.
var ValidRatings = []string{"strong", "acceptable", "watch", "decline"}

func normalizeRating(r string) string {
	for _, v := range ValidRatings {
		if r == v {
			return r
		}
	}
	return "watch"
}
