package analysis

import (
	"context"
	"encoding/json"
	"testing"

	"agricredit/pkg/core/extract"
	"agricredit/pkg/core/ratios"
	"agricredit/pkg/core/trend"
	"agricredit/pkg/core/validate"
)

const incomeDoc = `[["Year 2022","Year 2023","Year 2024"],["Revenue","400000","450000","500000"],["Net income","40000","52000","60000"]]`

const balanceDoc = `[["Year 2022","Year 2023","Year 2024"],["Current assets","120000","135000","150000"],["Current liabilities","90000","95000","100000"],["Total assets","900000","950000","1000000"],["Total equity","540000","570000","600000"]]`

func TestAnalyzeSingleDocument(t *testing.T) {
	engine := NewEngine()

	a, err := engine.Analyze(balanceDoc, StatementBalance)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(a.Years) != 3 {
		t.Fatalf("years = %v, want 3 entries", a.Years)
	}
	for cat, vals := range a.Metrics {
		if len(vals) != 3 {
			t.Errorf("len(%s) = %d, want 3", cat, len(vals))
		}
	}
	if got := a.Ratios[ratios.KeyCurrentRatio][2]; got != 1.50 {
		t.Errorf("CurrentRatio = %v, want 1.50", got)
	}
	if got := a.Ratios[ratios.KeyEquityRatio][2]; got != 60.0 {
		t.Errorf("EquityRatio = %v, want 60.0", got)
	}
	if !a.Validation.HasBalanceData {
		t.Error("hasBalanceData should be true")
	}
}

func TestAnalyzeCombinedJoinsBothDocuments(t *testing.T) {
	engine := NewEngine()

	a, err := engine.AnalyzeCombined(context.Background(), incomeDoc, balanceDoc)
	if err != nil {
		t.Fatalf("AnalyzeCombined failed: %v", err)
	}

	if a.Type != StatementCombined {
		t.Errorf("type = %v, want combined", a.Type)
	}

	// Income categories come from the income doc, balance from the balance
	// sheet; cross-document ratios see both.
	rev := a.Metrics[extract.CategoryRevenue]
	ta := a.Metrics[extract.CategoryTotalAssets]
	if rev[2] != 500000 || ta[2] != 1000000 {
		t.Fatalf("merge wrong: revenue=%v assets=%v", rev, ta)
	}

	// ROA = 60000/1000000 x 100 = 6.0 spans both documents.
	if got := a.Ratios[ratios.KeyROA][2]; got != 6.0 {
		t.Errorf("ROA = %v, want 6.0", got)
	}
	// DSCR proxy = 60000 / (100000 x 0.10) = 6.00
	if got := a.Ratios[ratios.KeyDSCR][2]; got != 6.00 {
		t.Errorf("DSCR = %v, want 6.00", got)
	}

	for cat, vals := range a.Metrics {
		if len(vals) != len(a.Years) {
			t.Errorf("len(%s) = %d != len(years) = %d", cat, len(vals), len(a.Years))
		}
	}
}

func TestAnalyzeCombinedMissingDocumentFails(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.AnalyzeCombined(context.Background(), incomeDoc, ""); err == nil {
		t.Fatal("expected error for missing balance sheet")
	}
}

func TestAnalyzeCombinedUnionsYearSets(t *testing.T) {
	engine := NewEngine()

	olderIncome := `[["Year 2021","Year 2022"],["Revenue","300000","400000"]]`
	a, err := engine.AnalyzeCombined(context.Background(), olderIncome, balanceDoc)
	if err != nil {
		t.Fatalf("AnalyzeCombined failed: %v", err)
	}

	want := []int{2021, 2022, 2023, 2024}
	if len(a.Years) != len(want) {
		t.Fatalf("years = %v, want %v", a.Years, want)
	}
	for i, y := range want {
		if a.Years[i] != y {
			t.Fatalf("years = %v, want %v", a.Years, want)
		}
	}
	for cat, vals := range a.Metrics {
		if len(vals) != 4 {
			t.Errorf("len(%s) = %d, want 4 after union", cat, len(vals))
		}
	}
}

func TestStatedDebtServiceOverridesProxy(t *testing.T) {
	engine := NewEngine()
	engine.DebtFigures = validate.DebtServiceFigures{
		PrincipalPayments: 20000,
		InterestPayments:  10000,
	}

	a, err := engine.AnalyzeCombined(context.Background(), incomeDoc, balanceDoc)
	if err != nil {
		t.Fatalf("AnalyzeCombined failed: %v", err)
	}

	// Latest period: DSCR = 60000 / (20000 + 10000) = 2.00,
	// interest coverage = (60000 + 10000) / 10000 = 7.00.
	if got := a.Ratios[ratios.KeyDSCR][2]; got != 2.00 {
		t.Errorf("DSCR = %v, want 2.00", got)
	}
	if got := a.Ratios[ratios.KeyInterestCoverage][2]; got != 7.00 {
		t.Errorf("InterestCoverage = %v, want 7.00", got)
	}

	// Earlier periods have no stated figures and keep the proxy:
	// DSCR 2023 = 52000 / (95000 x 0.10) = 5.47.
	if got := a.Ratios[ratios.KeyDSCR][1]; got != 5.47 {
		t.Errorf("proxy DSCR = %v, want 5.47", got)
	}

	if !a.Validation.DebtCoverageValid {
		t.Error("debtCoverageValid should be true with stated figures")
	}
}

func TestTrendsUseExplicitDirections(t *testing.T) {
	engine := NewEngine()

	a, err := engine.Analyze(incomeDoc, StatementIncome)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Net income 52000 -> 60000 is +15.4%: Improving.
	if got := a.Trends[string(extract.CategoryNetIncome)]; got != trend.Improving {
		t.Errorf("net income trend = %v, want Improving", got)
	}
}

func TestAnalysisDeterministicApartFromID(t *testing.T) {
	engine := NewEngine()

	a1, _ := engine.Analyze(balanceDoc, StatementBalance)
	a2, _ := engine.Analyze(balanceDoc, StatementBalance)
	a1.ID, a2.ID = "", ""

	b1, _ := json.Marshal(a1)
	b2, _ := json.Marshal(a2)
	if string(b1) != string(b2) {
		t.Error("identical content must produce identical analysis output")
	}
}
