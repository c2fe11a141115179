package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"agricredit/pkg/core/extract"
	"agricredit/pkg/core/ratios"
	"agricredit/pkg/core/trend"
	"agricredit/pkg/core/validate"
)

// Engine runs the extraction-and-ratio pipeline. The zero value is not
// usable; construct with NewEngine and adjust fields before first use.
type Engine struct {
	ExtractOptions extract.Options
	RatioConfig    ratios.Config
	LowerIsBetter  map[string]bool
	DebtFigures    validate.DebtServiceFigures
}

// NewEngine returns an engine with default keyword lists, fallback datasets
// and proxy constants.
func NewEngine() *Engine {
	return &Engine{
		ExtractOptions: extract.Options{},
		RatioConfig:    ratios.DefaultConfig(),
		LowerIsBetter:  DefaultLowerIsBetter(),
	}
}

// Analyze extracts a single document and computes its ratios, trends and
// validation flags.
func (e *Engine) Analyze(content string, st StatementType) (*StatementAnalysis, error) {
	result, err := extract.Extract(content, e.ExtractOptions)
	if err != nil {
		return nil, err
	}
	return e.assemble(result, st), nil
}

// AnalyzeCombined extracts an income statement and a balance sheet as two
// concurrent tasks, joins both results, and computes the cross-document
// ratios (ROA, DSCR) on the merged series. The join blocks until both
// extractions complete; no partial combination is produced.
func (e *Engine) AnalyzeCombined(ctx context.Context, incomeContent, balanceContent string) (*StatementAnalysis, error) {
	type outcome struct {
		res *extract.Result
		err error
	}

	incomeCh := make(chan outcome, 1)
	balanceCh := make(chan outcome, 1)

	go func() {
		res, err := extract.Extract(incomeContent, e.ExtractOptions)
		incomeCh <- outcome{res, err}
	}()
	go func() {
		res, err := extract.Extract(balanceContent, e.ExtractOptions)
		balanceCh <- outcome{res, err}
	}()

	income := <-incomeCh
	balance := <-balanceCh

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if income.err != nil {
		return nil, fmt.Errorf("income statement: %w", income.err)
	}
	if balance.err != nil {
		return nil, fmt.Errorf("balance sheet: %w", balance.err)
	}

	merged := mergeResults(income.res, balance.res)
	return e.assemble(merged, StatementCombined), nil
}

func (e *Engine) assemble(result *extract.Result, st StatementType) *StatementAnalysis {
	metrics := result.Metrics()

	inputs := ratios.InputsFromMetrics(metrics, result.Years)
	// Stated debt service applies to the latest period; earlier years
	// keep the configured proxies.
	if n := len(result.Years); n > 0 {
		if e.DebtFigures.PrincipalPayments > 0 || e.DebtFigures.InterestPayments > 0 {
			inputs.PrincipalPayments = latestOnly(n, e.DebtFigures.PrincipalPayments)
			inputs.InterestPayments = latestOnly(n, e.DebtFigures.InterestPayments)
		}
		if e.DebtFigures.TermDebt > 0 {
			inputs.TermDebt = latestOnly(n, e.DebtFigures.TermDebt)
		}
	}

	ratioSeries := ratios.ComputeSeries(inputs, e.RatioConfig)

	// Trends span both the raw metrics and the derived ratios.
	trendInput := make(map[string][]float64, len(metrics)+len(ratioSeries))
	for cat, vals := range metrics {
		trendInput[string(cat)] = vals
	}
	for key, vals := range ratioSeries {
		trendInput[key] = vals
	}

	return &StatementAnalysis{
		ID:         uuid.New().String(),
		Type:       st,
		Years:      result.Years,
		Extracted:  result.Extracted,
		Series:     result.Series,
		Metrics:    metrics,
		Ratios:     ratioSeries,
		Trends:     trend.ClassifyAll(trendInput, e.LowerIsBetter),
		Validation: validate.BuildContext(metrics, ratioSeries, e.DebtFigures),
	}
}

// mergeResults joins a combined analysis: income categories come from the
// income document, balance categories from the balance sheet. The merged
// YearSet is the union of both; every series is resized to it (right-padded,
// most recent period last) so the length invariant survives the merge.
func mergeResults(income, balance *extract.Result) *extract.Result {
	years := unionYears(income.Years, balance.Years)

	merged := &extract.Result{
		Aligned: income.Aligned && balance.Aligned,
		Years:   years,
		Series:  make(map[extract.Category]extract.CategorySeries, len(extract.AllCategories)),
	}

	for _, cat := range extract.IncomeCategories {
		merged.Series[cat] = resizeSeries(income.Series[cat], len(years))
	}
	for _, cat := range extract.BalanceCategories {
		merged.Series[cat] = resizeSeries(balance.Series[cat], len(years))
	}

	for _, s := range merged.Series {
		if s.Extracted {
			merged.Extracted = true
			break
		}
	}
	return merged
}

func latestOnly(n int, v float64) []float64 {
	s := make([]float64, n)
	s[n-1] = v
	return s
}

func unionYears(a, b extract.YearSet) extract.YearSet {
	seen := make(map[int]bool, len(a)+len(b))
	var out extract.YearSet
	for _, ys := range []extract.YearSet{a, b} {
		for _, y := range ys {
			if !seen[y] {
				seen[y] = true
				out = append(out, y)
			}
		}
	}
	// Union of two sorted sets still needs a sort when they interleave.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func resizeSeries(s extract.CategorySeries, n int) extract.CategorySeries {
	values := make([]float64, n)
	take := len(s.Values)
	if take > n {
		take = n
	}
	copy(values, s.Values[:take])
	s.Values = values
	return s
}
