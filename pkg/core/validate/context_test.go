package validate

import (
	"testing"

	"agricredit/pkg/core/extract"
	"agricredit/pkg/core/ratios"
)

func TestBuildContextAllZeroBalanceData(t *testing.T) {
	// Current assets and liabilities all zero (and no totals): balance data
	// and the ratios derived from it are not trustworthy.
	metrics := extract.MetricSeries{
		extract.CategoryRevenue:            {100000, 110000},
		extract.CategoryNetIncome:          {20000, 22000},
		extract.CategoryCurrentAssets:      {0, 0},
		extract.CategoryCurrentLiabilities: {0, 0},
		extract.CategoryTotalAssets:        {0, 0},
		extract.CategoryTotalEquity:        {0, 0},
	}
	ratioSeries := ratios.ComputeSeries(
		ratios.InputsFromMetrics(metrics, extract.YearSet{2023, 2024}),
		ratios.DefaultConfig(),
	)

	ctx := BuildContext(metrics, ratioSeries, DebtServiceFigures{})

	if ctx.HasBalanceData {
		t.Error("hasBalanceData should be false for all-zero balance series")
	}
	if ctx.HasValidRatios {
		t.Error("hasValidRatios should be false when balance data is zero")
	}
	if !ctx.HasIncomeData {
		t.Error("hasIncomeData should be true, income series is real")
	}
	// Two valid net income points exist.
	if !ctx.HasValidTrends {
		t.Error("hasValidTrends should be true with two valid net income points")
	}
}

func TestBuildContextIncomeLatestPeriodOnly(t *testing.T) {
	// Income flags key off the latest period: historic values alone are not
	// enough.
	metrics := extract.MetricSeries{
		extract.CategoryRevenue:   {100000, 0},
		extract.CategoryNetIncome: {20000, 0},
	}

	ctx := BuildContext(metrics, ratios.DerivedRatioSeries{}, DebtServiceFigures{})
	if ctx.HasIncomeData {
		t.Error("hasIncomeData should be false when the latest period is zero")
	}
}

func TestBuildContextDebtCoverage(t *testing.T) {
	metrics := extract.MetricSeries{
		extract.CategoryNetIncome: {50000, 60000},
	}

	// No debt figures at all: not assessable.
	ctx := BuildContext(metrics, ratios.DerivedRatioSeries{}, DebtServiceFigures{})
	if ctx.DebtCoverageValid {
		t.Error("debtCoverageValid should be false without debt figures")
	}

	// One valid figure flips the flag.
	ctx = BuildContext(metrics, ratios.DerivedRatioSeries{}, DebtServiceFigures{TermDebt: 250000})
	if !ctx.DebtCoverageValid {
		t.Error("debtCoverageValid should be true with net income + term debt")
	}

	// Valid figures but no net income: still not assessable.
	ctx = BuildContext(extract.MetricSeries{
		extract.CategoryNetIncome: {0, 0},
	}, ratios.DerivedRatioSeries{}, DebtServiceFigures{InterestPayments: 12000})
	if ctx.DebtCoverageValid {
		t.Error("debtCoverageValid requires valid net income")
	}
}

func TestBuildContextTrendsNeedTwoPoints(t *testing.T) {
	metrics := extract.MetricSeries{
		extract.CategoryNetIncome:   {50000},
		extract.CategoryTotalAssets: {900000},
	}
	ctx := BuildContext(metrics, ratios.DerivedRatioSeries{}, DebtServiceFigures{})
	if ctx.HasValidTrends {
		t.Error("hasValidTrends should be false for single-period series")
	}
}
