package demand

import (
	"fmt"
	"math/rand"
	"sort"

	"pricingAdvisor/domain"
	"pricingAdvisor/pkg/logger"
)

type Config struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

func DefaultConfig() Config {
	return Config{
		Trees:    100,
		MaxDepth: 12,
		MinLeaf:  2,
		Seed:     42,
	}
}

// Model predicts units sold from (segment, price, discount_percent) with an
// ensemble of regression trees over bootstrap samples. Tree ensembles capture
// segment-specific, non-linear elasticity without an explicit functional form.
type Model struct {
	cfg      Config
	trees    []*treeNode
	segments []string
	segIndex map[string]int
	trained  bool
}

func New() *Model {
	return NewModel(DefaultConfig())
}

func NewModel(cfg Config) *Model {
	if cfg.Trees <= 0 {
		cfg.Trees = DefaultConfig().Trees
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = DefaultConfig().MinLeaf
	}
	return &Model{cfg: cfg}
}

// Train fits the ensemble on a full dataset snapshot, replacing any previous
// state. Deterministic for a fixed config seed.
func (m *Model) Train(rows []domain.CustomerRecord) error {
	if len(rows) < 2*m.cfg.MinLeaf {
		return fmt.Errorf("%w: not enough rows to train demand model", domain.ErrDataFormat)
	}

	m.segments, m.segIndex = segmentEncoding(rows)

	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = m.encode(row.Segment, row.Price, row.DiscountPercent)
		y[i] = float64(row.UnitsSold)
	}

	rng := rand.New(rand.NewSource(m.cfg.Seed))
	trees := make([]*treeNode, m.cfg.Trees)

	for t := 0; t < m.cfg.Trees; t++ {
		sample := make([]int, len(rows))
		for i := range sample {
			sample[i] = rng.Intn(len(rows))
		}
		trees[t] = buildTree(x, y, sample, 0, m.cfg.MaxDepth, m.cfg.MinLeaf)
	}

	m.trees = trees
	m.trained = true

	logger.Info("demand model trained",
		"rows", len(rows),
		"trees", m.cfg.Trees,
		"segments", len(m.segments),
	)

	return nil
}

// PredictDemand returns predicted units (clamped to >= 0) and the implied
// revenue at the effective price.
func (m *Model) PredictDemand(segment string, price, discountPercent float64) (float64, float64, error) {
	if !m.trained {
		return 0, 0, domain.ErrNotTrained
	}

	x := m.encode(segment, price, discountPercent)

	sum := 0.0
	for _, tree := range m.trees {
		sum += tree.predict(x)
	}
	units := sum / float64(len(m.trees))
	if units < 0 {
		units = 0
	}

	revenue := units * price * (1 - discountPercent)
	return units, revenue, nil
}

func (m *Model) Trained() bool {
	return m.trained
}

// encode builds [price, discount, one-hot segment...]. Segments unseen at
// training time map to an all-zero one-hot block.
func (m *Model) encode(segment string, price, discountPercent float64) []float64 {
	x := make([]float64, 2+len(m.segments))
	x[0] = price
	x[1] = discountPercent
	if idx, ok := m.segIndex[segment]; ok {
		x[2+idx] = 1
	}
	return x
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
