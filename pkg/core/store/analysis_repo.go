package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"agricredit/pkg/core/analysis"
	"agricredit/pkg/core/narrative"
)

// AnalysisRepository abstracts persistence so tests can inject a fake.
type AnalysisRepository interface {
	Save(ctx context.Context, borrowerID string, a *analysis.StatementAnalysis, n *narrative.Narrative) error
	Load(ctx context.Context, borrowerID string) (*StoredAnalysis, error)
}

// StoredAnalysis is the persisted record: the latest analysis for a
// borrower plus its narrative, stored as one JSONB blob.
type StoredAnalysis struct {
	BorrowerID string                      `json:"borrower_id"`
	Analysis   *analysis.StatementAnalysis `json:"analysis"`
	Narrative  *narrative.Narrative        `json:"narrative,omitempty"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// ErrNotFound is returned when a borrower has no stored analysis.
var ErrNotFound = errors.New("analysis not found")

// AnalysisRepo is the Postgres-backed repository.
type AnalysisRepo struct{}

func NewAnalysisRepo() *AnalysisRepo {
	return &AnalysisRepo{}
}

var _ AnalysisRepository = (*AnalysisRepo)(nil)

// Save upserts the borrower's latest analysis.
func (r *AnalysisRepo) Save(ctx context.Context, borrowerID string, a *analysis.StatementAnalysis, n *narrative.Narrative) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	record := StoredAnalysis{
		BorrowerID: borrowerID,
		Analysis:   a,
		Narrative:  n,
		UpdatedAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO statement_analyses (borrower_id, analysis_id, analysis_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (borrower_id)
		DO UPDATE SET analysis_id = $2, analysis_json = $3, updated_at = $4`

	_, err = pool.Exec(ctx, query, borrowerID, a.ID, payload, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// Load fetches the borrower's latest analysis.
func (r *AnalysisRepo) Load(ctx context.Context, borrowerID string) (*StoredAnalysis, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var payload []byte
	err := pool.QueryRow(ctx,
		`SELECT analysis_json FROM statement_analyses WHERE borrower_id = $1`,
		borrowerID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}

	var record StoredAnalysis
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &record, nil
}
