package simulator

import (
	"errors"
	"math"
	"sync"
	"testing"

	"pricingAdvisor/business/risk"
	"pricingAdvisor/domain"
)

// stubDemand models units = demandAt(price); revenue follows the effective
// price like the real model.
type stubDemand struct {
	calls    int
	demandAt func(price float64) float64
}

func (s *stubDemand) PredictDemand(segment string, price, discountPercent float64) (float64, float64, error) {
	s.calls++
	units := s.demandAt(price)
	return units, units * price * (1 - discountPercent), nil
}

type stubChurn struct {
	churnAt func(price float64) float64
}

func (s *stubChurn) PredictChurnProb(segment string, price, discountPercent, unitsSold float64) (float64, error) {
	return s.churnAt(price), nil
}

func stubRegistry(demandAt func(float64) float64, churnAt func(float64) float64) (*Registry, *stubDemand) {
	d := &stubDemand{demandAt: demandAt}
	r := NewRegistry()
	r.Swap(&ModelPair{
		Demand: d,
		Churn:  &stubChurn{churnAt: churnAt},
	})
	return r, d
}

func baseSummary() domain.ScenarioSummary {
	return domain.ScenarioSummary{
		Segment:         "SMB",
		CurrentPrice:    100,
		CurrentDiscount: 0.05,
		CurrentUnits:    10,
	}
}

func TestSimulateUntrained(t *testing.T) {
	sim := New(NewRegistry())

	if _, err := sim.SimulateScenario(baseSummary(), 10, 0); !errors.Is(err, domain.ErrNotTrained) {
		t.Fatalf("err = %v, want ErrNotTrained", err)
	}
	if _, err := sim.FindOptimalPrice(baseSummary(), 50, 50); !errors.Is(err, domain.ErrNotTrained) {
		t.Fatalf("err = %v, want ErrNotTrained", err)
	}
}

// A zero-delta scenario must equal its own baseline exactly.
func TestZeroChangeIsNeutral(t *testing.T) {
	registry, _ := stubRegistry(
		func(price float64) float64 { return 1000 / price },
		func(price float64) float64 { return price / 1000 },
	)
	sim := New(registry)

	result, err := sim.SimulateScenario(baseSummary(), 0, 0)
	if err != nil {
		t.Fatalf("SimulateScenario: %v", err)
	}

	if result.RevenueUpliftPct != 0 {
		t.Errorf("revenue_uplift_pct = %v, want 0", result.RevenueUpliftPct)
	}
	if result.ChurnIncrease != 0 {
		t.Errorf("churn_increase = %v, want 0", result.ChurnIncrease)
	}
	if result.NewPrice != result.OldPrice {
		t.Errorf("new_price %v != old_price %v", result.NewPrice, result.OldPrice)
	}
}

func TestScenarioArithmetic(t *testing.T) {
	registry, _ := stubRegistry(
		func(price float64) float64 { return 10 },
		func(price float64) float64 { return 0.2 },
	)
	sim := New(registry)

	result, err := sim.SimulateScenario(baseSummary(), 10, 0)
	if err != nil {
		t.Fatalf("SimulateScenario: %v", err)
	}

	if math.Abs(result.NewPrice-110) > 1e-9 {
		t.Errorf("new_price = %v, want 110", result.NewPrice)
	}

	// Constant demand: revenue scales with price, uplift is exactly +10%.
	if math.Abs(result.RevenueUpliftPct-10) > 1e-9 {
		t.Errorf("revenue_uplift_pct = %v, want 10", result.RevenueUpliftPct)
	}

	wantScore, wantLabel := risk.Score(result.RevenueUpliftPct, 0.2)
	if result.RiskScore != wantScore || result.RiskLabel != wantLabel {
		t.Errorf("risk = (%v, %q), want (%v, %q)", result.RiskScore, result.RiskLabel, wantScore, wantLabel)
	}

	wantCLTV := result.NewPrice * (1 - 0.05) / 0.2
	if math.Abs(result.CLTV-wantCLTV) > 1e-9 {
		t.Errorf("cltv = %v, want %v", result.CLTV, wantCLTV)
	}
}

func TestDiscountClamped(t *testing.T) {
	registry, _ := stubRegistry(
		func(price float64) float64 { return 10 },
		func(price float64) float64 { return 0.1 },
	)
	sim := New(registry)

	summary := baseSummary()
	summary.CurrentDiscount = 0.9

	// +50 points of discount would exceed 1.0; it must clamp, not fail.
	result, err := sim.SimulateScenario(summary, 0, 50)
	if err != nil {
		t.Fatalf("SimulateScenario: %v", err)
	}

	// Fully discounted: CLTV numerator collapses to zero.
	if result.CLTV != 0 {
		t.Errorf("cltv = %v, want 0 at 100%% discount", result.CLTV)
	}
}

// Predicted zero churn hits the 1% floor instead of dividing by zero.
func TestCLTVChurnFloor(t *testing.T) {
	registry, _ := stubRegistry(
		func(price float64) float64 { return 10 },
		func(price float64) float64 { return 0 },
	)
	sim := New(registry)

	result, err := sim.SimulateScenario(baseSummary(), 10, 0)
	if err != nil {
		t.Fatalf("SimulateScenario: %v", err)
	}

	want := result.NewPrice * (1 - 0.05) / 0.01
	if math.Abs(result.CLTV-want) > 1e-9 {
		t.Errorf("cltv = %v, want %v", result.CLTV, want)
	}
	if math.IsInf(result.CLTV, 0) || math.IsNaN(result.CLTV) {
		t.Errorf("cltv not finite: %v", result.CLTV)
	}
}

func TestZeroBaselineRevenueGuard(t *testing.T) {
	registry, _ := stubRegistry(
		func(price float64) float64 { return 0 },
		func(price float64) float64 { return 0.1 },
	)
	sim := New(registry)

	result, err := sim.SimulateScenario(baseSummary(), 10, 0)
	if err != nil {
		t.Fatalf("SimulateScenario: %v", err)
	}

	if result.RevenueUpliftPct != 0 {
		t.Errorf("revenue_uplift_pct = %v, want 0 when baseline revenue is 0", result.RevenueUpliftPct)
	}
}

func TestOptimalSearchEvaluatesFullGrid(t *testing.T) {
	registry, d := stubRegistry(
		func(price float64) float64 { return 1000 / price },
		func(price float64) float64 { return 0.1 },
	)
	sim := New(registry)

	if _, err := sim.FindOptimalPrice(baseSummary(), 20, 10); err != nil {
		t.Fatalf("FindOptimalPrice: %v", err)
	}

	// Grid width (20+10)/5+1 = 7 points, two demand calls per point
	// (scenario + baseline).
	wantPoints := 7
	if d.calls != wantPoints*2 {
		t.Errorf("demand calls = %d, want %d", d.calls, wantPoints*2)
	}
}

// flatDemand returns the same units and revenue regardless of price, making
// every grid point's uplift exactly zero.
type flatDemand struct{}

func (flatDemand) PredictDemand(segment string, price, discountPercent float64) (float64, float64, error) {
	return 10, 950, nil
}

// Identical revenue at every grid point: every uplift is equal, so the
// strict-> comparison must keep the first (lowest) change.
func TestOptimalSearchTieBreak(t *testing.T) {
	registry := NewRegistry()
	registry.Swap(&ModelPair{
		Demand: flatDemand{},
		Churn:  &stubChurn{churnAt: func(price float64) float64 { return 0.1 }},
	})
	sim := New(registry)

	result, err := sim.FindOptimalPrice(baseSummary(), 50, 50)
	if err != nil {
		t.Fatalf("FindOptimalPrice: %v", err)
	}

	if result.OptimalPriceChange == nil {
		t.Fatal("optimal_price_change not set")
	}
	if *result.OptimalPriceChange != -50 {
		t.Errorf("optimal_price_change = %v, want -50 (first grid point)", *result.OptimalPriceChange)
	}
}

func TestOptimalSearchFindsPeak(t *testing.T) {
	// Revenue peaks at price 120: units fall off quadratically around it.
	registry, _ := stubRegistry(
		func(price float64) float64 {
			return math.Max(0, 100-(price-120)*(price-120)/10) / price * 100
		},
		func(price float64) float64 { return 0.1 },
	)
	sim := New(registry)

	result, err := sim.FindOptimalPrice(baseSummary(), 50, 50)
	if err != nil {
		t.Fatalf("FindOptimalPrice: %v", err)
	}

	if result.OptimalPriceChange == nil || *result.OptimalPriceChange != 20 {
		t.Errorf("optimal_price_change = %v, want 20", result.OptimalPriceChange)
	}
}

func TestRegistrySwapUnderLoad(t *testing.T) {
	registry, _ := stubRegistry(
		func(price float64) float64 { return 10 },
		func(price float64) float64 { return 0.1 },
	)
	sim := New(registry)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if _, err := sim.SimulateScenario(baseSummary(), 10, 0); err != nil {
					t.Errorf("SimulateScenario: %v", err)
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			d := &stubDemand{demandAt: func(price float64) float64 { return 10 }}
			registry.Swap(&ModelPair{
				Demand: d,
				Churn:  &stubChurn{churnAt: func(price float64) float64 { return 0.1 }},
			})
		}
	}()

	wg.Wait()
}
