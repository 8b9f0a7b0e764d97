package risk

import (
	"math"
	"testing"
)

func TestScoreFormula(t *testing.T) {
	cases := []struct {
		name      string
		uplift    float64
		churn     float64
		wantScore float64
		wantLabel string
	}{
		{"moderate churn with uplift", 10, 0.5, 33.0, LabelModerate},
		{"uplift buys back risk", 50, 0.0, 0.0, LabelSafe},
		{"clamped at zero", 200, 0.1, 0.0, LabelSafe},
		{"full churn with heavy loss", -100, 1.0, 90.0, LabelCritical},
		{"rounded to one decimal", 0, 0.123, 8.6, LabelSafe},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, label := Score(tc.uplift, tc.churn)
			if score != tc.wantScore {
				t.Errorf("score = %v, want %v", score, tc.wantScore)
			}
			if label != tc.wantLabel {
				t.Errorf("label = %q, want %q", label, tc.wantLabel)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	for _, uplift := range []float64{-1000, -50, 0, 50, 1000} {
		for _, churn := range []float64{0, 0.25, 0.5, 0.75, 1} {
			score, _ := Score(uplift, churn)
			if score < 0 || score > 100 {
				t.Fatalf("Score(%v, %v) = %v out of [0,100]", uplift, churn, score)
			}
		}
	}
}

// Boundaries are inclusive on the upper label.
func TestLabelBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, LabelSafe},
		{19.9, LabelSafe},
		{20.0, LabelModerate},
		{49.9, LabelModerate},
		{50.0, LabelHigh},
		{79.9, LabelHigh},
		{80.0, LabelCritical},
		{100.0, LabelCritical},
	}

	for _, tc := range cases {
		if got := Label(tc.score); got != tc.want {
			t.Errorf("Label(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestNonFiniteInputsAreMaxRisk(t *testing.T) {
	inputs := [][2]float64{
		{math.NaN(), 0.1},
		{10, math.NaN()},
		{math.Inf(1), 0.1},
		{10, math.Inf(-1)},
	}

	for _, in := range inputs {
		score, label := Score(in[0], in[1])
		if score != 100.0 || label != LabelCritical {
			t.Errorf("Score(%v, %v) = (%v, %q), want (100, %q)", in[0], in[1], score, label, LabelCritical)
		}
	}
}
