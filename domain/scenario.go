package domain

import "time"

// ScenarioSummary is the baseline description of a segment supplied by the
// caller, typically averaged from real data but accepted as-is.
type ScenarioSummary struct {
	Segment         string  `json:"segment"`
	CurrentPrice    float64 `json:"current_price"`
	CurrentDiscount float64 `json:"current_discount"`
	CurrentUnits    float64 `json:"current_units"`
}

// ScenarioResult is the full forecast for one simulated price change.
// Persisted so the reporting and visualization collaborators can read back
// simulation history; the simulator itself treats it as an immutable value.
type ScenarioResult struct {
	ID               uint64  `gorm:"primaryKey;autoIncrement" json:"-"`
	Segment          string  `gorm:"column:segment;type:text" json:"segment"`
	OldPrice         float64 `gorm:"column:old_price;type:numeric" json:"old_price"`
	NewPrice         float64 `gorm:"column:new_price;type:numeric" json:"new_price"`
	RevenueUpliftPct float64 `gorm:"column:revenue_uplift_pct;type:numeric" json:"revenue_uplift_pct"`
	ChurnProbability float64 `gorm:"column:churn_probability;type:numeric" json:"churn_probability"`
	ChurnIncrease    float64 `gorm:"column:churn_increase;type:numeric" json:"churn_increase"`
	RiskScore        float64 `gorm:"column:risk_score;type:numeric" json:"risk_score"`
	RiskLabel        string  `gorm:"column:risk_label;type:text" json:"risk_label"`
	PredictedUnits   float64 `gorm:"column:predicted_units;type:numeric" json:"predicted_units"`
	CLTV             float64 `gorm:"column:cltv;type:numeric" json:"cltv"`

	// Set only when produced by the optimal-price search.
	OptimalPriceChange *float64 `gorm:"column:optimal_price_change;type:numeric" json:"optimal_price_change,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (ScenarioResult) TableName() string {
	return "scenario_results"
}
