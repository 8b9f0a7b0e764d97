package churn

import (
	"fmt"
	"math"
	"sort"

	"pricingAdvisor/domain"
	"pricingAdvisor/pkg/logger"
)

type Config struct {
	LearningRate float64
	Epochs       int
	L2           float64
}

func DefaultConfig() Config {
	return Config{
		LearningRate: 0.1,
		Epochs:       600,
		L2:           1.0,
	}
}

// Model predicts churn probability from (segment, price, discount_percent,
// units_sold) with a linear logistic classifier. Rare-churn imbalance is
// countered by class-balance reweighting. Numeric features are standardized
// with training-set statistics, segment is one-hot encoded.
type Model struct {
	cfg Config

	weights []float64
	bias    float64

	means [3]float64
	stds  [3]float64

	segments []string
	segIndex map[string]int
	trained  bool
}

func New() *Model {
	return NewModel(DefaultConfig())
}

func NewModel(cfg Config) *Model {
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultConfig().LearningRate
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = DefaultConfig().Epochs
	}
	return &Model{cfg: cfg}
}

// Train fits the classifier on a full dataset snapshot, replacing any
// previous state. Deterministic: zero-initialized weights, full-batch
// gradient descent.
func (m *Model) Train(rows []domain.CustomerRecord) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: empty dataset for churn model", domain.ErrDataFormat)
	}

	positives := 0
	for _, row := range rows {
		if row.Churned != 0 {
			positives++
		}
	}
	negatives := len(rows) - positives
	if positives == 0 || negatives == 0 {
		return fmt.Errorf("%w: churn training needs both churned and retained rows", domain.ErrDataFormat)
	}

	m.segments, m.segIndex = segmentEncoding(rows)
	m.fitScaler(rows)

	n := len(rows)
	dims := 3 + len(m.segments)

	x := make([][]float64, n)
	y := make([]float64, n)
	sampleWeight := make([]float64, n)

	// class_weight="balanced": w_c = n / (2 * n_c)
	wPos := float64(n) / (2 * float64(positives))
	wNeg := float64(n) / (2 * float64(negatives))

	for i, row := range rows {
		x[i] = m.encode(row.Segment, row.Price, row.DiscountPercent, float64(row.UnitsSold))
		if row.Churned != 0 {
			y[i] = 1
			sampleWeight[i] = wPos
		} else {
			sampleWeight[i] = wNeg
		}
	}

	weights := make([]float64, dims)
	bias := 0.0

	for epoch := 0; epoch < m.cfg.Epochs; epoch++ {
		grad := make([]float64, dims)
		gradBias := 0.0

		for i := 0; i < n; i++ {
			z := bias
			for d := 0; d < dims; d++ {
				z += weights[d] * x[i][d]
			}
			err := sampleWeight[i] * (sigmoid(z) - y[i])

			for d := 0; d < dims; d++ {
				grad[d] += err * x[i][d]
			}
			gradBias += err
		}

		for d := 0; d < dims; d++ {
			grad[d] = grad[d]/float64(n) + m.cfg.L2*weights[d]/float64(n)
			weights[d] -= m.cfg.LearningRate * grad[d]
		}
		bias -= m.cfg.LearningRate * gradBias / float64(n)
	}

	m.weights = weights
	m.bias = bias
	m.trained = true

	logger.Info("churn model trained",
		"rows", n,
		"churned", positives,
		"segments", len(m.segments),
	)

	return nil
}

// PredictChurnProb returns the positive-class probability in [0,1]. The
// units_sold argument is typically the demand model's prediction for the
// scenario under evaluation.
func (m *Model) PredictChurnProb(segment string, price, discountPercent, unitsSold float64) (float64, error) {
	if !m.trained {
		return 0, domain.ErrNotTrained
	}

	x := m.encode(segment, price, discountPercent, unitsSold)

	z := m.bias
	for d, w := range m.weights {
		z += w * x[d]
	}

	return sigmoid(z), nil
}

func (m *Model) Trained() bool {
	return m.trained
}

// Coefficients exposes the fitted weights keyed by feature name.
func (m *Model) Coefficients() map[string]float64 {
	if !m.trained {
		return nil
	}

	out := map[string]float64{
		"price":            m.weights[0],
		"discount_percent": m.weights[1],
		"units_sold":       m.weights[2],
		"intercept":        m.bias,
	}
	for i, seg := range m.segments {
		out["segment_"+seg] = m.weights[3+i]
	}
	return out
}

func (m *Model) fitScaler(rows []domain.CustomerRecord) {
	n := float64(len(rows))

	var sums, sqs [3]float64
	for _, row := range rows {
		vals := [3]float64{row.Price, row.DiscountPercent, float64(row.UnitsSold)}
		for d, v := range vals {
			sums[d] += v
			sqs[d] += v * v
		}
	}

	for d := 0; d < 3; d++ {
		m.means[d] = sums[d] / n
		variance := sqs[d]/n - m.means[d]*m.means[d]
		if variance < 0 {
			variance = 0
		}
		m.stds[d] = math.Sqrt(variance)
		if m.stds[d] == 0 {
			m.stds[d] = 1
		}
	}
}

func (m *Model) encode(segment string, price, discountPercent, unitsSold float64) []float64 {
	x := make([]float64, 3+len(m.segments))
	x[0] = (price - m.means[0]) / m.stds[0]
	x[1] = (discountPercent - m.means[1]) / m.stds[1]
	x[2] = (unitsSold - m.means[2]) / m.stds[2]
	if idx, ok := m.segIndex[segment]; ok {
		x[3+idx] = 1
	}
	return x
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func segmentEncoding(rows []domain.CustomerRecord) ([]string, map[string]int) {
	seen := make(map[string]bool)
	var segments []string
	for _, row := range rows {
		if !seen[row.Segment] {
			seen[row.Segment] = true
			segments = append(segments, row.Segment)
		}
	}
	sort.Strings(segments)

	index := make(map[string]int, len(segments))
	for i, s := range segments {
		index[s] = i
	}
	return segments, index
}
