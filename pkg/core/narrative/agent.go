package narrative

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"agricredit/pkg/core/agent"
	"agricredit/pkg/core/analysis"
	"agricredit/pkg/core/extract"
	"agricredit/pkg/core/prompt"
	"agricredit/pkg/core/ratios"
	"agricredit/pkg/core/trend"
	"agricredit/pkg/core/utils"
	"agricredit/pkg/core/validate"
)

// fallbackSystemPrompt is used when the prompt registry has not been
// loaded (e.g. the resources directory is missing in a test binary).
const fallbackSystemPrompt = `You are a senior agricultural credit analyst. ` +
	`Write a concise credit memo in markdown based on the financial data provided. ` +
	`Finish with a JSON object on its own line containing the fields ` +
	`"rating" (one of strong, acceptable, watch, decline), "strengths", "risks" and "conditions".`

// Narrator generates a credit memo for a completed analysis.
type Narrator interface {
	Generate(ctx context.Context, a *analysis.StatementAnalysis) (*Narrative, error)
}

// CreditNarrator calls Gemini directly.
type CreditNarrator struct {
	modelName    string
	client       *genai.Client
	systemPrompt string
}

// ManagedNarrator routes through the provider manager so the active
// model can be switched at runtime.
type ManagedNarrator struct {
	agentManager *agent.Manager
	systemPrompt string
}

func NewCreditNarrator(ctx context.Context) (*CreditNarrator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	return &CreditNarrator{
		modelName:    "gemini-2.0-flash-exp",
		client:       client,
		systemPrompt: systemPrompt(),
	}, nil
}

func NewManagedNarrator(mgr *agent.Manager) *ManagedNarrator {
	return &ManagedNarrator{
		agentManager: mgr,
		systemPrompt: systemPrompt(),
	}
}

func systemPrompt() string {
	if pt := prompt.GetNarrativePrompt(); pt != nil && pt.SystemPrompt != "" {
		return pt.SystemPrompt
	}
	return fallbackSystemPrompt
}

func (n *CreditNarrator) Generate(ctx context.Context, a *analysis.StatementAnalysis) (*Narrative, error) {
	model := n.client.GenerativeModel(n.modelName)
	model.SetTemperature(0.3)

	fullPrompt := fmt.Sprintf("%s\n\nTask: %s", n.systemPrompt, BuildNarrativePrompt(a))

	resp, err := model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("narrative generation returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return assembleNarrative(a, sb.String()), nil
}

func (n *ManagedNarrator) Generate(ctx context.Context, a *analysis.StatementAnalysis) (*Narrative, error) {
	raw, err := n.agentManager.ExecutePrompt(ctx, "narrator", BuildNarrativePrompt(a), n.systemPrompt, nil)
	if err != nil {
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}
	return assembleNarrative(a, raw), nil
}

func assembleNarrative(a *analysis.StatementAnalysis, raw string) *Narrative {
	summary, verdict := SplitResponse(raw)
	return &Narrative{
		ID:          uuid.New().String(),
		AnalysisID:  a.ID,
		Summary:     utils.CleanMarkdown(summary),
		Verdict:     verdict,
		GeneratedAt: time.Now().UTC(),
	}
}

// BuildNarrativePrompt renders the analysis into the user prompt. It is
// a pure function so tests can assert on its content without a client.
func BuildNarrativePrompt(a *analysis.StatementAnalysis) string {
	var sb strings.Builder

	sb.WriteString("Financial statement analysis")
	if !a.Extracted {
		sb.WriteString(" (representative sample data, no figures extracted)")
	}
	sb.WriteString("\n\nYears: ")
	for i, y := range a.Years {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", y)
	}
	sb.WriteString("\n\nMetrics:\n")
	metricSeries := make(map[string][]float64, len(a.Metrics))
	for cat, vals := range a.Metrics {
		metricSeries[string(cat)] = vals
	}
	writeSeries(&sb, metricSeries)
	sb.WriteString("\nRatios:\n")
	labeled := make(map[string][]float64, len(a.Ratios))
	for key, vals := range a.Ratios {
		name := key
		if label, ok := ratioLabel[key]; ok {
			name = label
		}
		labeled[name] = vals
	}
	writeSeries(&sb, labeled)
	sb.WriteString("\nTrends:\n")
	writeTrends(&sb, a.Trends)
	writeGrowth(&sb, a)
	sb.WriteString("\nData quality:\n")
	fmt.Fprintf(&sb, "  income data: %t, balance data: %t, valid ratios: %t, valid trends: %t, debt coverage computable: %t\n",
		a.Validation.HasIncomeData, a.Validation.HasBalanceData,
		a.Validation.HasValidRatios, a.Validation.HasValidTrends,
		a.Validation.DebtCoverageValid)

	return sb.String()
}

func writeSeries(sb *strings.Builder, m map[string][]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, "  %s: ", k)
		for i, v := range m[k] {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%.2f", v)
		}
		sb.WriteString("\n")
	}
}

// writeGrowth adds year-over-year and compound growth for the two
// series loan officers ask about first. Both need at least two aligned
// periods; silence is better than a fabricated growth line.
func writeGrowth(sb *strings.Builder, a *analysis.StatementAnalysis) {
	lines := false
	for _, g := range []struct {
		cat   extract.Category
		label string
	}{
		{extract.CategoryRevenue, "Revenue"},
		{extract.CategoryNetIncome, "Net income"},
	} {
		yoy, err := validate.YoYFromSeries(a.Years, a.Metrics[g.cat], g.label)
		if err != nil {
			continue
		}
		if !lines {
			sb.WriteString("\nGrowth:\n")
			lines = true
		}
		fmt.Fprintf(sb, "  %s %d vs %d: %+.1f%%", g.label, yoy.CurrentYear, yoy.PriorYear, yoy.ChangePct)
		if cagr, err := validate.CAGRFromSeries(a.Years, a.Metrics[g.cat]); err == nil {
			fmt.Fprintf(sb, " (CAGR %+.1f%%)", cagr)
		}
		sb.WriteString("\n")
	}
}

func writeTrends(sb *strings.Builder, trends map[string]trend.Label) {
	keys := make([]string, 0, len(trends))
	for k := range trends {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, "  %s: %s\n", k, trends[k])
	}
}

// SplitResponse separates the markdown summary from the trailing JSON
// verdict. Model output is rarely clean, so the verdict is decoded
// leniently and a missing or unparseable verdict degrades to "watch"
// rather than failing the whole memo.
func SplitResponse(raw string) (string, Verdict) {
	verdict := Verdict{Rating: "watch"}

	// Walk "{" positions right to left so a nested object inside the
	// verdict does not stop the outer block from being tried.
	for idx := strings.LastIndex(raw, "{"); idx >= 0; idx = strings.LastIndex(raw[:idx], "{") {
		var parsed Verdict
		if err := utils.DecodeLenient(raw[idx:], &parsed); err != nil {
			continue
		}
		if parsed.Rating == "" && len(parsed.Strengths) == 0 && len(parsed.Risks) == 0 {
			continue
		}
		parsed.Rating = normalizeRating(strings.ToLower(strings.TrimSpace(parsed.Rating)))
		return strings.TrimSpace(raw[:idx]), parsed
	}
	return raw, verdict
}

// ratioLabel maps ratio keys to the names used in prompts. Kept here so
// prompt wording stays stable even if keys change.
var ratioLabel = map[string]string{
	ratios.KeyCurrentRatio:          "current ratio",
	ratios.KeyWorkingCapital:        "working capital",
	ratios.KeyEquityRatio:           "equity ratio",
	ratios.KeyDebtToEquity:          "debt to equity",
	ratios.KeyROA:                   "return on assets",
	ratios.KeyROE:                   "return on equity",
	ratios.KeyAssetTurnover:         "asset turnover",
	ratios.KeyOperatingProfitMargin: "operating profit margin",
	ratios.KeyNetProfitMargin:       "net profit margin",
	ratios.KeyDSCR:                  "debt service coverage",
	ratios.KeyInterestCoverage:      "interest coverage",
	ratios.KeyFinancialLeverage:     "financial leverage",
}
