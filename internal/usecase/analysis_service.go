package usecase

import (
	"context"
	"fmt"
	"time"

	"adprofit/internal/domain"
	"adprofit/pkg/logger"
	"adprofit/pkg/metrics"

	"github.com/google/uuid"
)

// AnalysisService wraps the pure calculation and diagnostic functions with
// logging, observability and persistence. All impurity (ids, wall-clock
// time, metrics) lives here; the functions it delegates to stay
// deterministic.
type AnalysisService struct {
	repo         domain.AnalysisRepository
	logger       *logger.Logger
	metrics      *metrics.Metrics
	historyLimit int
}

func NewAnalysisService(
	repo domain.AnalysisRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	historyLimit int,
) *AnalysisService {
	return &AnalysisService{
		repo:         repo,
		logger:       logger,
		metrics:      metrics,
		historyLimit: historyLimit,
	}
}

// Calculate derives the unit economics for one campaign period.
func (s *AnalysisService) Calculate(ctx context.Context, in domain.CalculationInputs) (domain.CalculationResults, error) {
	log := s.logger.WithContext(ctx)

	results, solver, err := calculateMetrics(in)
	if err != nil {
		log.WithError(err).Warn("Rejected calculation with invalid inputs")
		s.metrics.RecordAnalysis("invalid_input")
		return domain.CalculationResults{}, err
	}

	if solver != nil {
		s.metrics.RecordSolverRun(solver.iterations, solver.converged)
	}
	s.metrics.RecordAnalysis("success")

	log.WithFields(map[string]any{
		"items_sold":      in.ItemsSold,
		"pv_real":         results.PVReal,
		"profit_per_item": results.ProfitPerItem,
		"mll":             results.MLL,
		"roas":            results.ROAS,
	}).Info("Calculated campaign metrics")

	return results, nil
}

// Diagnose runs the full pipeline for one campaign: calculate, classify,
// diagnose, persist. The stored record is returned with its generated id.
func (s *AnalysisService) Diagnose(ctx context.Context, in domain.CalculationInputs, opts domain.DiagnosticOptions) (*domain.AnalysisRecord, error) {
	log := s.logger.WithContext(ctx)

	results, err := s.Calculate(ctx, in)
	if err != nil {
		return nil, err
	}

	diagnostic := Diagnose(domain.DiagnosticInputs{
		Results:          results,
		ROASTarget:       opts.ROASTarget,
		DailyBudget:      opts.DailyBudget,
		HasMonthlyBudget: opts.HasMonthlyBudget,
		Impressions:      opts.Impressions,
		Clicks:           opts.Clicks,
		ItemsSold:        in.ItemsSold,
		RecentEvents:     opts.RecentEvents,
	})

	record := domain.AnalysisRecord{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Inputs:     in,
		Options:    opts,
		Results:    results,
		Diagnostic: diagnostic,
	}

	if err := s.repo.Store(ctx, record); err != nil {
		log.WithError(err).Error("Failed to store analysis")
		return nil, fmt.Errorf("failed to store analysis: %w", err)
	}

	s.metrics.RecordDiagnostic(diagnostic.Scenario.String(), string(diagnostic.Status))

	log.WithFields(map[string]any{
		"analysis_id": record.ID,
		"scenario":    diagnostic.Scenario.String(),
		"status":      diagnostic.Status,
		"issues":      len(diagnostic.PrimaryIssues),
	}).Info("Campaign diagnosed")

	return &record, nil
}

// GetAnalysis fetches one stored diagnostic run by id.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return record, nil
}

// History lists stored analyses newest first.
func (s *AnalysisService) History(ctx context.Context, limit, offset int) ([]domain.AnalysisRecord, int, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, total, nil
}
