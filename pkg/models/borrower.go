package models

import (
	"time"
)

// BorrowerProfile identifies the farm operation behind a set of
// statements. Statements arrive keyed by borrower ID; everything else
// here is descriptive context carried through to the credit memo.
type BorrowerProfile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Operation  string    `json:"operation"` // 'dairy', 'row_crop', 'mixed', etc.
	Region     string    `json:"region"`
	FiscalYear int       `json:"fiscal_year"`
	CreatedAt  time.Time `json:"created_at"`
}

// DebtSchedule holds the borrower's stated debt service figures for the
// latest period. When present these replace the income-based proxies in
// coverage ratios.
type DebtSchedule struct {
	PrincipalPayments float64 `json:"principal_payments"`
	InterestPayments  float64 `json:"interest_payments"`
	TermDebt          float64 `json:"term_debt"`
}

// AnalysisRequest is the API payload for a statement analysis run.
// Content carries the income statement (or the only document for a
// single-statement run); BalanceContent is set for combined runs.
type AnalysisRequest struct {
	Borrower       BorrowerProfile `json:"borrower"`
	Content        string          `json:"content"`
	BalanceContent string          `json:"balance_content,omitempty"`
	StatementType  string          `json:"statement_type,omitempty"`
	Periods        int             `json:"periods,omitempty"`
	CurrentYear    int             `json:"current_year,omitempty"`
	DebtSchedule   *DebtSchedule   `json:"debt_schedule,omitempty"`
}
