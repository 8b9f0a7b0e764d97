package synthetic

import "testing"

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(200)
	b := Generate(200)

	if len(a) != 200 || len(b) != 200 {
		t.Fatalf("got %d/%d rows, want 200", len(a), len(b))
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateRanges(t *testing.T) {
	rows := Generate(1000)

	churned := 0
	for i, row := range rows {
		base, ok := basePrices[row.Segment]
		if !ok {
			t.Fatalf("row %d has unknown segment %q", i, row.Segment)
		}
		if row.Price < base*0.5 {
			t.Errorf("row %d price %v below minimum %v", i, row.Price, base*0.5)
		}
		if row.DiscountPercent < 0 || row.DiscountPercent > 0.3 {
			t.Errorf("row %d discount %v out of [0,0.3]", i, row.DiscountPercent)
		}
		if row.UnitsSold < 1 {
			t.Errorf("row %d units %d below 1", i, row.UnitsSold)
		}
		churned += row.Churned
	}

	// The churn recipe keeps the positive class rare but present.
	if churned == 0 || churned == len(rows) {
		t.Fatalf("degenerate churn distribution: %d of %d", churned, len(rows))
	}

	t.Logf("generated %d rows, %d churned", len(rows), churned)
}
