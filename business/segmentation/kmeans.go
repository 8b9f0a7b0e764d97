package segmentation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"pricingAdvisor/domain"
)

const (
	seed          = 42
	maxIterations = 100
)

// Cluster label vocabulary, assigned in ascending mean-revenue order.
// Clusters past the vocabulary get a generic "Segment N" name.
var labelVocabulary = []string{"Low Value", "Mid Value", "High Value", "Premium"}

// Result carries the enriched rows plus the fitted cluster model so callers
// can inspect centroids or re-assign new rows.
type Result struct {
	Rows      []domain.CustomerRecord
	Centroids [][]float64 // in standardized feature space
	Labels    []string    // per cluster index
	Sizes     []int
}

// Cluster partitions rows into k value tiers over the standardized feature
// vector (price, units_sold, discount_percent, revenue) and writes a
// descriptive label into each row's SegmentCluster field. Enrichment only:
// model training keeps using the raw segment column.
func Cluster(rows []domain.CustomerRecord, k int) (Result, error) {
	if k < 1 {
		return Result{}, errors.New("cluster count must be at least 1")
	}
	if len(rows) < k {
		return Result{}, fmt.Errorf("need at least %d rows for %d clusters", k, k)
	}

	points := standardize(featureMatrix(rows))

	centroids := initialCentroids(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}

		recomputeCentroids(points, assignments, centroids)

		if !changed && iter > 0 {
			break
		}
	}

	labels, sizes := labelByRevenue(rows, assignments, k)

	out := make([]domain.CustomerRecord, len(rows))
	for i, row := range rows {
		row.SegmentCluster = labels[assignments[i]]
		out[i] = row
	}

	return Result{
		Rows:      out,
		Centroids: centroids,
		Labels:    labels,
		Sizes:     sizes,
	}, nil
}

func featureMatrix(rows []domain.CustomerRecord) [][]float64 {
	points := make([][]float64, len(rows))
	for i, row := range rows {
		points[i] = []float64{
			row.Price,
			float64(row.UnitsSold),
			row.DiscountPercent,
			row.Revenue,
		}
	}
	return points
}

// standardize scales every column to zero mean and unit variance.
func standardize(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return points
	}
	dims := len(points[0])
	n := float64(len(points))

	means := make([]float64, dims)
	for _, p := range points {
		for d, v := range p {
			means[d] += v
		}
	}
	for d := range means {
		means[d] /= n
	}

	stds := make([]float64, dims)
	for _, p := range points {
		for d, v := range p {
			diff := v - means[d]
			stds[d] += diff * diff
		}
	}
	for d := range stds {
		stds[d] = math.Sqrt(stds[d] / n)
		if stds[d] == 0 {
			stds[d] = 1
		}
	}

	out := make([][]float64, len(points))
	for i, p := range points {
		scaled := make([]float64, dims)
		for d, v := range p {
			scaled[d] = (v - means[d]) / stds[d]
		}
		out[i] = scaled
	}
	return out
}

// initialCentroids uses seeded k-means++ style spreading: the first centroid
// is a random point, each next one is the point farthest from its nearest
// chosen centroid.
func initialCentroids(points [][]float64, k int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))

	centroids := make([][]float64, 0, k)
	first := points[rng.Intn(len(points))]
	centroids = append(centroids, append([]float64(nil), first...))

	for len(centroids) < k {
		bestIdx := 0
		bestDist := -1.0
		for i, p := range points {
			d := distToNearest(p, centroids)
			if d > bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		centroids = append(centroids, append([]float64(nil), points[bestIdx]...))
	}

	return centroids
}

func distToNearest(p []float64, centroids [][]float64) float64 {
	best := math.Inf(1)
	for _, c := range centroids {
		if d := squaredDistance(p, c); d < best {
			best = d
		}
	}
	return best
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		if d := squaredDistance(p, c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func recomputeCentroids(points [][]float64, assignments []int, centroids [][]float64) {
	dims := len(points[0])
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dims)
	}

	for i, p := range points {
		c := assignments[i]
		counts[c]++
		for d, v := range p {
			sums[c][d] += v
		}
	}

	for c := range centroids {
		if counts[c] == 0 {
			// Empty cluster keeps its previous centroid.
			continue
		}
		for d := range centroids[c] {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}
}

// labelByRevenue ranks clusters by mean revenue ascending and maps them onto
// the label vocabulary.
func labelByRevenue(rows []domain.CustomerRecord, assignments []int, k int) ([]string, []int) {
	revenueSum := make([]float64, k)
	sizes := make([]int, k)

	for i, row := range rows {
		c := assignments[i]
		revenueSum[c] += row.Revenue
		sizes[c]++
	}

	type clusterRank struct {
		id          int
		meanRevenue float64
	}
	ranks := make([]clusterRank, k)
	for c := 0; c < k; c++ {
		mean := 0.0
		if sizes[c] > 0 {
			mean = revenueSum[c] / float64(sizes[c])
		}
		ranks[c] = clusterRank{id: c, meanRevenue: mean}
	}

	sort.Slice(ranks, func(i, j int) bool { return ranks[i].meanRevenue < ranks[j].meanRevenue })

	labels := make([]string, k)
	for rank, cr := range ranks {
		if rank < len(labelVocabulary) {
			labels[cr.id] = labelVocabulary[rank]
		} else {
			labels[cr.id] = fmt.Sprintf("Segment %d", rank+1)
		}
	}

	return labels, sizes
}
