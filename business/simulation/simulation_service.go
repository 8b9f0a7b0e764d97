package simulation

import (
	"context"
	"fmt"

	"pricingAdvisor/business/simulator"
	"pricingAdvisor/domain"
	"pricingAdvisor/pkg/logger"
	"pricingAdvisor/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// ScenarioRepository contract interface
type ScenarioRepository interface {
	Save(ctx context.Context, result *domain.ScenarioResult) error
	FindRecent(ctx context.Context, limit int) ([]domain.ScenarioResult, error)
}

// FallbackTrainer trains the model pair on synthetic data; wired only when
// the auto-train fallback policy is enabled.
type FallbackTrainer interface {
	TrainSyntheticSnapshot(ctx context.Context, n int) error
	Trained() bool
}

type Service struct {
	sim          *simulator.PricingSimulator
	registry     *simulator.Registry
	scenarioRepo ScenarioRepository
	trainer      FallbackTrainer

	autoTrainFallback bool
	syntheticRecords  int
}

func NewService(
	sim *simulator.PricingSimulator,
	registry *simulator.Registry,
	scenarioRepo ScenarioRepository,
	trainer FallbackTrainer,
	autoTrainFallback bool,
	syntheticRecords int,
) *Service {
	return &Service{
		sim:               sim,
		registry:          registry,
		scenarioRepo:      scenarioRepo,
		trainer:           trainer,
		autoTrainFallback: autoTrainFallback,
		syntheticRecords:  syntheticRecords,
	}
}

// Simulate runs one scenario forecast and records it for the reporting and
// visualization consumers.
func (s *Service) Simulate(ctx context.Context, summary domain.ScenarioSummary, priceChangePct, discountChangePct float64) (domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScenarioResult{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.ensureTrained(ctx); err != nil {
		return domain.ScenarioResult{}, err
	}

	timer := prometheus.NewTimer(metrics.SimulationLatency)
	result, err := s.sim.SimulateScenario(summary, priceChangePct, discountChangePct)
	timer.ObserveDuration()
	if err != nil {
		return domain.ScenarioResult{}, err
	}

	metrics.SimulationRequests.WithLabelValues("scenario").Inc()
	s.record(ctx, &result)

	return result, nil
}

// FindOptimal grid-searches for the revenue-maximizing price change.
func (s *Service) FindOptimal(ctx context.Context, summary domain.ScenarioSummary, maxIncrease, maxDecrease int) (domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScenarioResult{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.ensureTrained(ctx); err != nil {
		return domain.ScenarioResult{}, err
	}

	result, err := s.sim.FindOptimalPrice(summary, maxIncrease, maxDecrease)
	if err != nil {
		return domain.ScenarioResult{}, err
	}

	metrics.SimulationRequests.WithLabelValues("optimal").Inc()
	s.record(ctx, &result)

	return result, nil
}

// History returns the most recent persisted scenario results.
func (s *Service) History(ctx context.Context, limit int) ([]domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	return s.scenarioRepo.FindRecent(ctx, limit)
}

// PredictDemand exposes the raw demand prediction.
func (s *Service) PredictDemand(ctx context.Context, segment string, price, discountPercent float64) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, fmt.Errorf("context error: %w", err)
	}

	pair := s.registry.Snapshot()
	if pair == nil {
		return 0, 0, domain.ErrNotTrained
	}

	return pair.Demand.PredictDemand(segment, price, discountPercent)
}

// PredictChurn exposes the raw churn prediction.
func (s *Service) PredictChurn(ctx context.Context, segment string, price, discountPercent, unitsSold float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	pair := s.registry.Snapshot()
	if pair == nil {
		return 0, domain.ErrNotTrained
	}

	return pair.Churn.PredictChurnProb(segment, price, discountPercent, unitsSold)
}

// ensureTrained applies the auto-train fallback policy. The simulator core
// itself stays strict; the fallback lives here, behind the config flag.
func (s *Service) ensureTrained(ctx context.Context) error {
	if s.registry.Trained() {
		return nil
	}

	if !s.autoTrainFallback || s.trainer == nil {
		return domain.ErrNotTrained
	}

	logger.Warn("models untrained, running synthetic fallback training", "records", s.syntheticRecords)

	return s.trainer.TrainSyntheticSnapshot(ctx, s.syntheticRecords)
}

// record persists a result for reporting; persistence failure is logged but
// does not invalidate the forecast already computed.
func (s *Service) record(ctx context.Context, result *domain.ScenarioResult) {
	if s.scenarioRepo == nil {
		return
	}

	if err := s.scenarioRepo.Save(ctx, result); err != nil {
		logger.Warn("failed to persist scenario result", "error", err)
	}
}
