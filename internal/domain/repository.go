package domain

import (
	"context"
	"time"
)

// AnalysisRecord is one stored diagnostic run.
type AnalysisRecord struct {
	ID         string             `json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	Inputs     CalculationInputs  `json:"inputs"`
	Options    DiagnosticOptions  `json:"options"`
	Results    CalculationResults `json:"results"`
	Diagnostic DiagnosticResult   `json:"diagnostic"`
}

// interface for stored analysis operations
type AnalysisRepository interface {
	Store(ctx context.Context, record AnalysisRecord) error
	GetByID(ctx context.Context, id string) (*AnalysisRecord, error)
	List(ctx context.Context, limit, offset int) ([]AnalysisRecord, int, error)
}
