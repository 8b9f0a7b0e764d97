package simulator

import (
	"math"

	"pricingAdvisor/business/risk"
	"pricingAdvisor/domain"
)

const (
	// Grid step of the optimal-price search, in percent.
	searchStep = 5

	defaultMaxIncrease = 50
	defaultMaxDecrease = 50

	// Floor applied to predicted churn in the CLTV division.
	cltvChurnFloor = 0.01
)

// PricingSimulator turns a price/discount delta into a revenue/churn/risk
// forecast using the registry's current model pair. It shares the models and
// never retrains them.
type PricingSimulator struct {
	registry *Registry
}

func New(registry *Registry) *PricingSimulator {
	return &PricingSimulator{registry: registry}
}

// SimulateScenario forecasts the effect of changing price by priceChangePct
// percent (and optionally discount by discountChangePct points-of-percent) on
// the given baseline. The baseline itself is re-predicted through the same
// models so the comparison is model-vs-model, not model-vs-noisy-history.
func (s *PricingSimulator) SimulateScenario(summary domain.ScenarioSummary, priceChangePct, discountChangePct float64) (domain.ScenarioResult, error) {
	pair := s.registry.Snapshot()
	if pair == nil {
		return domain.ScenarioResult{}, domain.ErrNotTrained
	}

	return simulateWithPair(pair, summary, priceChangePct, discountChangePct)
}

func simulateWithPair(pair *ModelPair, summary domain.ScenarioSummary, priceChangePct, discountChangePct float64) (domain.ScenarioResult, error) {
	newPrice := summary.CurrentPrice * (1 + priceChangePct/100)
	// Out-of-range discounts are clamped, not rejected.
	newDiscount := clamp(summary.CurrentDiscount+discountChangePct/100, 0, 1)

	predUnits, predRevenue, err := pair.Demand.PredictDemand(summary.Segment, newPrice, newDiscount)
	if err != nil {
		return domain.ScenarioResult{}, err
	}

	churnProb, err := pair.Churn.PredictChurnProb(summary.Segment, newPrice, newDiscount, predUnits)
	if err != nil {
		return domain.ScenarioResult{}, err
	}

	baseUnits, baseRevenue, err := pair.Demand.PredictDemand(summary.Segment, summary.CurrentPrice, summary.CurrentDiscount)
	if err != nil {
		return domain.ScenarioResult{}, err
	}

	baseChurn, err := pair.Churn.PredictChurnProb(summary.Segment, summary.CurrentPrice, summary.CurrentDiscount, baseUnits)
	if err != nil {
		return domain.ScenarioResult{}, err
	}

	revenueUpliftPct := 0.0
	if baseRevenue > 0 {
		revenueUpliftPct = (predRevenue - baseRevenue) / baseRevenue * 100
	}

	riskScore, riskLabel := risk.Score(revenueUpliftPct, churnProb)

	// CLTV ~ net monthly revenue / churn rate, floored at 1% churn so a
	// zero-churn prediction cannot blow up the division.
	cltv := (newPrice * (1 - newDiscount)) / math.Max(cltvChurnFloor, churnProb)

	return domain.ScenarioResult{
		Segment:          summary.Segment,
		OldPrice:         summary.CurrentPrice,
		NewPrice:         newPrice,
		RevenueUpliftPct: revenueUpliftPct,
		ChurnProbability: churnProb,
		ChurnIncrease:    churnProb - baseChurn,
		RiskScore:        riskScore,
		RiskLabel:        riskLabel,
		PredictedUnits:   predUnits,
		CLTV:             cltv,
	}, nil
}

// FindOptimalPrice grid-searches price changes from -maxDecrease to
// +maxIncrease percent in 5-point steps and returns the scenario with the
// strictly greatest revenue uplift. Ties keep the first (lowest) change.
// Pure revenue maximization: churn and risk are reported, never penalized.
func (s *PricingSimulator) FindOptimalPrice(summary domain.ScenarioSummary, maxIncrease, maxDecrease int) (domain.ScenarioResult, error) {
	pair := s.registry.Snapshot()
	if pair == nil {
		return domain.ScenarioResult{}, domain.ErrNotTrained
	}

	if maxIncrease <= 0 {
		maxIncrease = defaultMaxIncrease
	}
	if maxDecrease <= 0 {
		maxDecrease = defaultMaxDecrease
	}

	var best domain.ScenarioResult
	bestUplift := math.Inf(-1)
	found := false

	for change := -maxDecrease; change <= maxIncrease; change += searchStep {
		scenario, err := simulateWithPair(pair, summary, float64(change), 0)
		if err != nil {
			return domain.ScenarioResult{}, err
		}

		if scenario.RevenueUpliftPct > bestUplift {
			bestUplift = scenario.RevenueUpliftPct
			optimal := float64(change)
			scenario.OptimalPriceChange = &optimal
			best = scenario
			found = true
		}
	}

	if !found {
		return domain.ScenarioResult{}, domain.ErrNotTrained
	}

	return best, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
