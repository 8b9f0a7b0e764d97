package risk

import "math"

const (
	LabelSafe     = "Safe / Low Risk"
	LabelModerate = "Moderate Risk"
	LabelHigh     = "High Risk"
	LabelCritical = "Critical Risk"
)

const (
	churnWeight  = 0.7
	upliftWeight = 0.2
)

// Score maps (revenue uplift %, churn probability) to a danger level in
// [0,100] plus a label. Churn drives risk up, revenue uplift buys some of it
// back. NaN or infinite inputs are treated as maximum risk so the function
// stays total.
func Score(revenueUpliftPct, churnProbability float64) (float64, string) {
	if !isFinite(revenueUpliftPct) || !isFinite(churnProbability) {
		return 100.0, LabelCritical
	}

	score := churnProbability*100*churnWeight - revenueUpliftPct*upliftWeight

	score = math.Max(0, math.Min(100, score))
	score = math.Round(score*10) / 10

	return score, Label(score)
}

func Label(score float64) string {
	switch {
	case score < 20:
		return LabelSafe
	case score < 50:
		return LabelModerate
	case score < 80:
		return LabelHigh
	default:
		return LabelCritical
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
