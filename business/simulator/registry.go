package simulator

import "sync"

// DemandModel predicts units sold and implied revenue for a scenario.
type DemandModel interface {
	PredictDemand(segment string, price, discountPercent float64) (float64, float64, error)
}

// ChurnModel predicts churn probability; unitsSold is usually the demand
// model's own prediction for the same scenario.
type ChurnModel interface {
	PredictChurnProb(segment string, price, discountPercent, unitsSold float64) (float64, error)
}

// ModelPair is one consistent demand+churn snapshot. The two are always
// trained together on the same dataset and replaced as a unit.
type ModelPair struct {
	Demand DemandModel
	Churn  ChurnModel
}

// Registry holds the current model pair. Retraining builds a fresh pair and
// swaps it in atomically, so a prediction can never observe one retrained
// model next to the other's stale state.
type Registry struct {
	mu   sync.RWMutex
	pair *ModelPair
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Swap publishes a new immutable model pair.
func (r *Registry) Swap(pair *ModelPair) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pair = pair
}

// Snapshot returns the current pair, or nil when nothing has been trained.
// Callers use one snapshot for an entire simulation so a concurrent retrain
// cannot change models mid-forecast.
func (r *Registry) Snapshot() *ModelPair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pair
}

func (r *Registry) Trained() bool {
	return r.Snapshot() != nil
}
