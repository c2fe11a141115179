package prompt

import (
	"strings"
	"testing"
)

func register(t *testing.T, pt *PromptTemplate) {
	t.Helper()
	if err := Get().Register(pt); err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func TestRegistryLookup(t *testing.T) {
	Get().Clear()
	defer Get().Clear()

	register(t, &PromptTemplate{
		ID:           "credit.narrative",
		Category:     "credit",
		SystemPrompt: "You are a credit analyst.",
	})
	register(t, &PromptTemplate{
		ID:           "credit.covenants",
		Category:     "credit",
		SystemPrompt: "Suggest covenants.",
	})

	if got := Get().Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}

	sp, err := GetCreditPrompt("covenants")
	if err != nil {
		t.Fatalf("GetCreditPrompt: %v", err)
	}
	if sp != "Suggest covenants." {
		t.Errorf("system prompt = %q", sp)
	}

	if pt := GetNarrativePrompt(); pt == nil || pt.ID != NarrativePromptID {
		t.Errorf("GetNarrativePrompt = %+v", pt)
	}

	if got := len(Get().ListByCategory("credit")); got != 2 {
		t.Errorf("ListByCategory = %d entries, want 2", got)
	}
}

func TestGetNarrativePromptMissing(t *testing.T) {
	Get().Clear()
	if pt := GetNarrativePrompt(); pt != nil {
		t.Errorf("expected nil for empty registry, got %+v", pt)
	}
}

func TestRenderSubstitutesVariables(t *testing.T) {
	pt := &PromptTemplate{
		ID:             "credit.test",
		UserPromptTmpl: "Analyze {{.Borrower}} for fiscal year {{.Year}}.",
	}

	out, err := pt.Render(map[string]interface{}{"Borrower": "Maple Row Dairy", "Year": 2024})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Maple Row Dairy") || !strings.Contains(out, "2024") {
		t.Errorf("rendered = %q", out)
	}
}
