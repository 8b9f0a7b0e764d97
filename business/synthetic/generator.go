package synthetic

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"pricingAdvisor/domain"
)

// Fixed seed keeps the numeric columns reproducible across runs.
const defaultSeed = 42

var (
	segments       = []string{"SMB", "Mid", "Enterprise"}
	segmentWeights = []float64{0.5, 0.3, 0.2}

	basePrices    = map[string]float64{"SMB": 100, "Mid": 500, "Enterprise": 2000}
	priceVariance = map[string]float64{"SMB": 20, "Mid": 100, "Enterprise": 500}
	baseUnits     = map[string]float64{"SMB": 10, "Mid": 20, "Enterprise": 50}

	// Price elasticity of demand per segment; SMB reacts hardest.
	elasticity = map[string]float64{"SMB": -1.5, "Mid": -1.0, "Enterprise": -0.5}
)

// Generate produces n synthetic SaaS customer records with segment-dependent
// pricing, demand elasticity and churn behavior. Numeric fields are
// deterministic for a given n; the month column is anchored to the current
// date.
func Generate(n int) []domain.CustomerRecord {
	return GenerateSeeded(n, defaultSeed)
}

func GenerateSeeded(n int, seed int64) []domain.CustomerRecord {
	rng := rand.New(rand.NewSource(seed))
	startDate := time.Now().AddDate(0, 0, -365)

	rows := make([]domain.CustomerRecord, 0, n)

	for i := 0; i < n; i++ {
		segment := pickSegment(rng)

		price := basePrices[segment] + rng.NormFloat64()*priceVariance[segment]
		price = math.Max(price, basePrices[segment]*0.5)

		// Enterprise deals carry bigger discounts.
		discountBase := 0.0
		switch segment {
		case "Enterprise":
			discountBase = 0.10
		case "Mid":
			discountBase = 0.05
		}
		discount := clamp(rng.NormFloat64()*0.05+discountBase, 0, 0.3)

		// Demand follows Q = baseUnits * priceFactor^elasticity with noise.
		priceFactor := (price * (1 - discount)) / basePrices[segment]
		units := int(baseUnits[segment] * math.Pow(priceFactor, elasticity[segment]) * (1 + rng.NormFloat64()*0.1))
		if units < 1 {
			units = 1
		}

		// Churn rises with effective price above baseline, falls with discount.
		churnProb := 0.05
		if segment == "SMB" {
			churnProb += 0.05
		}
		churnProb = clamp(churnProb+0.1*(priceFactor-1)-0.1*discount, 0, 1)

		churned := 0
		if rng.Float64() < churnProb {
			churned = 1
		}

		monthDate := startDate.AddDate(0, 0, 30*rng.Intn(12))

		rows = append(rows, domain.CustomerRecord{
			CustomerID:      fmt.Sprintf("CUST_%04d", i+1),
			Segment:         segment,
			Price:           math.Round(price*100) / 100,
			DiscountPercent: math.Round(discount*100) / 100,
			UnitsSold:       units,
			Churned:         churned,
			Month:           monthDate.Format("2006-01"),
		})
	}

	return rows
}

func pickSegment(rng *rand.Rand) string {
	r := rng.Float64()
	acc := 0.0
	for i, w := range segmentWeights {
		acc += w
		if r < acc {
			return segments[i]
		}
	}
	return segments[len(segments)-1]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
