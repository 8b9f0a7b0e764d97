package churn

import (
	"errors"
	"testing"

	"pricingAdvisor/business/pipeline"
	"pricingAdvisor/business/synthetic"
	"pricingAdvisor/domain"
)

func trainedModel(t *testing.T) (*Model, []domain.CustomerRecord) {
	t.Helper()

	rows := pipeline.Derive(pipeline.Clean(synthetic.Generate(800)))

	m := New()
	if err := m.Train(rows); err != nil {
		t.Fatalf("Train: %v", err)
	}
	return m, rows
}

func TestPredictBeforeTrain(t *testing.T) {
	m := New()

	_, err := m.PredictChurnProb("SMB", 100, 0.05, 10)
	if !errors.Is(err, domain.ErrNotTrained) {
		t.Fatalf("err = %v, want ErrNotTrained", err)
	}
}

func TestTrainRequiresBothClasses(t *testing.T) {
	rows := []domain.CustomerRecord{
		{Segment: "SMB", Price: 100, DiscountPercent: 0.05, UnitsSold: 10, Churned: 0},
		{Segment: "SMB", Price: 110, DiscountPercent: 0.05, UnitsSold: 9, Churned: 0},
	}

	m := New()
	if err := m.Train(rows); !errors.Is(err, domain.ErrDataFormat) {
		t.Fatalf("err = %v, want ErrDataFormat", err)
	}
}

func TestProbabilityBounds(t *testing.T) {
	m, _ := trainedModel(t)

	for _, segment := range []string{"SMB", "Mid", "Enterprise", "Unknown"} {
		for _, price := range []float64{10, 100, 1000, 5000} {
			for _, units := range []float64{0, 10, 100} {
				prob, err := m.PredictChurnProb(segment, price, 0.05, units)
				if err != nil {
					t.Fatalf("PredictChurnProb: %v", err)
				}
				if prob < 0 || prob > 1 {
					t.Errorf("probability %v out of [0,1] for (%s, %v, %v)", prob, segment, price, units)
				}
			}
		}
	}
}

func TestTrainingIsDeterministic(t *testing.T) {
	a, _ := trainedModel(t)
	b, _ := trainedModel(t)

	pa, _ := a.PredictChurnProb("Mid", 500, 0.1, 20)
	pb, _ := b.PredictChurnProb("Mid", 500, 0.1, 20)
	if pa != pb {
		t.Fatalf("identically trained models disagree: %v vs %v", pa, pb)
	}
}

// With balanced reweighting the classifier should separate the training
// classes: churned rows score higher on average than retained rows.
func TestSeparatesTrainingClasses(t *testing.T) {
	m, rows := trainedModel(t)

	var churnedSum, retainedSum float64
	var churnedN, retainedN int

	for _, row := range rows {
		prob, err := m.PredictChurnProb(row.Segment, row.Price, row.DiscountPercent, float64(row.UnitsSold))
		if err != nil {
			t.Fatalf("PredictChurnProb: %v", err)
		}
		if row.Churned == 1 {
			churnedSum += prob
			churnedN++
		} else {
			retainedSum += prob
			retainedN++
		}
	}

	churnedAvg := churnedSum / float64(churnedN)
	retainedAvg := retainedSum / float64(retainedN)

	t.Logf("avg predicted churn: churned=%.4f (n=%d), retained=%.4f (n=%d)",
		churnedAvg, churnedN, retainedAvg, retainedN)

	if churnedAvg <= retainedAvg {
		t.Errorf("model does not separate classes: churned avg %.4f <= retained avg %.4f",
			churnedAvg, retainedAvg)
	}
}

func TestCoefficients(t *testing.T) {
	m, _ := trainedModel(t)

	coefs := m.Coefficients()
	for _, key := range []string{"price", "discount_percent", "units_sold", "intercept", "segment_SMB"} {
		if _, ok := coefs[key]; !ok {
			t.Errorf("missing coefficient %q", key)
		}
	}

	if New().Coefficients() != nil {
		t.Error("untrained model should expose no coefficients")
	}
}
