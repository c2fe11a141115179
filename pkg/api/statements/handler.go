package statements

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"agricredit/pkg/core/agent"
	"agricredit/pkg/core/analysis"
	"agricredit/pkg/core/extract"
	"agricredit/pkg/core/narrative"
	"agricredit/pkg/core/store"
	"agricredit/pkg/core/validate"
	"agricredit/pkg/models"
)

var agentManager *agent.Manager
var repo store.AnalysisRepository

// InitHandler wires the shared provider manager. The repository is nil
// when the database is not configured; analysis still works, results
// just are not persisted.
func InitHandler(mgr *agent.Manager, r store.AnalysisRepository) {
	agentManager = mgr
	repo = r
}

type NarrativeRequest struct {
	BorrowerID string                      `json:"borrower_id,omitempty"`
	Analysis   *analysis.StatementAnalysis `json:"analysis,omitempty"`
}

type NarrativeResponse struct {
	Narrative *narrative.Narrative        `json:"narrative"`
	Analysis  *analysis.StatementAnalysis `json:"analysis"`
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleAnalyze runs the extraction and ratio engine over one or two
// statement documents. A request with balance_content set triggers the
// combined income + balance path.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	engine := engineFor(&req)

	var result *analysis.StatementAnalysis
	var err error
	if req.BalanceContent != "" {
		fmt.Printf("[STATEMENTS] Combined analysis for borrower %s\n", req.Borrower.ID)
		result, err = engine.AnalyzeCombined(r.Context(), req.Content, req.BalanceContent)
	} else {
		st := statementType(req.StatementType)
		fmt.Printf("[STATEMENTS] %s analysis for borrower %s\n", st, req.Borrower.ID)
		result, err = engine.Analyze(req.Content, st)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	persist(r, req.Borrower.ID, result, nil)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleNarrative generates a credit memo. The analysis comes inline or
// from the store by borrower ID.
func HandleNarrative(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req NarrativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	a := req.Analysis
	if a == nil {
		if req.BorrowerID == "" || repo == nil {
			http.Error(w, "analysis or borrower_id with persistence required", http.StatusBadRequest)
			return
		}
		stored, err := repo.Load(r.Context(), req.BorrowerID)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "no analysis on file for borrower", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		a = stored.Analysis
	}

	narrator := narrative.NewManagedNarrator(agentManager)
	memo, err := narrator.Generate(r.Context(), a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	fmt.Printf("[STATEMENTS] Narrative %s rated %s\n", memo.ID, memo.Verdict.Rating)

	persist(r, req.BorrowerID, a, memo)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NarrativeResponse{Narrative: memo, Analysis: a})
}

// HandleGetAnalysis returns the stored analysis for ?borrower_id=.
func HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	borrowerID := r.URL.Query().Get("borrower_id")
	if borrowerID == "" {
		http.Error(w, "borrower_id is required", http.StatusBadRequest)
		return
	}
	if repo == nil {
		http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
		return
	}

	stored, err := repo.Load(r.Context(), borrowerID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "no analysis on file for borrower", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stored)
}

func engineFor(req *models.AnalysisRequest) *analysis.Engine {
	engine := analysis.NewEngine()
	engine.ExtractOptions = extract.Options{
		Periods:     req.Periods,
		CurrentYear: req.CurrentYear,
	}
	if req.DebtSchedule != nil {
		engine.DebtFigures = validate.DebtServiceFigures{
			PrincipalPayments: req.DebtSchedule.PrincipalPayments,
			InterestPayments:  req.DebtSchedule.InterestPayments,
			TermDebt:          req.DebtSchedule.TermDebt,
		}
	}
	return engine
}

func statementType(s string) analysis.StatementType {
	switch s {
	case string(analysis.StatementBalance):
		return analysis.StatementBalance
	default:
		return analysis.StatementIncome
	}
}

func persist(r *http.Request, borrowerID string, a *analysis.StatementAnalysis, memo *narrative.Narrative) {
	if repo == nil || borrowerID == "" {
		return
	}
	if err := repo.Save(r.Context(), borrowerID, a, memo); err != nil {
		fmt.Printf("[STATEMENTS] Persist failed for %s: %v\n", borrowerID, err)
	}
}
