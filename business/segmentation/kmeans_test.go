package segmentation

import (
	"testing"

	"pricingAdvisor/domain"
)

// Three well-separated revenue tiers, 30 rows each.
func tieredRows() []domain.CustomerRecord {
	var rows []domain.CustomerRecord
	tiers := []struct {
		price   float64
		units   int
		revenue float64
	}{
		{100, 10, 1000},
		{500, 20, 10000},
		{2000, 50, 100000},
	}

	for _, tier := range tiers {
		for i := 0; i < 30; i++ {
			rows = append(rows, domain.CustomerRecord{
				Segment:         "X",
				Price:           tier.price + float64(i),
				UnitsSold:       tier.units,
				DiscountPercent: 0.05,
				Revenue:         tier.revenue + float64(i*10),
			})
		}
	}
	return rows
}

func TestClusterLabelsRankedByRevenue(t *testing.T) {
	result, err := Cluster(tieredRows(), 3)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}

	if len(result.Labels) != 3 {
		t.Fatalf("got %d labels, want 3", len(result.Labels))
	}

	// The lowest-revenue rows must land in "Low Value", the highest in
	// "High Value".
	if got := result.Rows[0].SegmentCluster; got != "Low Value" {
		t.Errorf("low tier labeled %q, want Low Value", got)
	}
	if got := result.Rows[len(result.Rows)-1].SegmentCluster; got != "High Value" {
		t.Errorf("high tier labeled %q, want High Value", got)
	}

	for i, size := range result.Sizes {
		t.Logf("cluster %d (%s): %d rows", i, result.Labels[i], size)
	}
}

func TestClusterDeterministic(t *testing.T) {
	rows := tieredRows()

	a, err := Cluster(rows, 3)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	b, err := Cluster(rows, 3)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}

	for i := range a.Rows {
		if a.Rows[i].SegmentCluster != b.Rows[i].SegmentCluster {
			t.Fatalf("row %d label differs between runs: %q vs %q",
				i, a.Rows[i].SegmentCluster, b.Rows[i].SegmentCluster)
		}
	}
}

func TestClusterGenericLabelsPastVocabulary(t *testing.T) {
	var rows []domain.CustomerRecord
	for i := 0; i < 60; i++ {
		rows = append(rows, domain.CustomerRecord{
			Segment:   "X",
			Price:     float64(100 + i*50),
			UnitsSold: 5 + i,
			Revenue:   float64((100 + i*50) * (5 + i)),
		})
	}

	result, err := Cluster(rows, 5)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}

	found := false
	for _, label := range result.Labels {
		if label == "Segment 5" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected generic label Segment 5 in %v", result.Labels)
	}
}

func TestClusterErrors(t *testing.T) {
	rows := tieredRows()

	if _, err := Cluster(rows, 0); err == nil {
		t.Error("k=0 should fail")
	}
	if _, err := Cluster(rows[:2], 3); err == nil {
		t.Error("fewer rows than clusters should fail")
	}
}

func TestClusterDoesNotTouchSegmentColumn(t *testing.T) {
	result, err := Cluster(tieredRows(), 3)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}

	for i, row := range result.Rows {
		if row.Segment != "X" {
			t.Fatalf("row %d raw segment changed to %q", i, row.Segment)
		}
		if row.SegmentCluster == "" {
			t.Fatalf("row %d missing cluster label", i)
		}
	}
}
