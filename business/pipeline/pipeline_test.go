package pipeline

import (
	"errors"
	"math"
	"strings"
	"testing"

	"pricingAdvisor/domain"
)

const sampleCSV = `customer_id,segment,price,units_sold,discount_percent,churned,month
CUST_0001,SMB,100.00,10,0.05,0,2025-01
CUST_0002,Mid,500.00,20,0.10,1,2025-02
CUST_0003,Enterprise,2000.00,50,0.15,true,2025-03
CUST_0004,SMB,not-a-price,10,0.05,0,2025-04
`

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}

	// The unparseable price row is dropped during ingestion.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].Segment != "SMB" || rows[0].Price != 100 || rows[0].UnitsSold != 10 {
		t.Errorf("first row parsed wrong: %+v", rows[0])
	}

	if rows[1].Churned != 1 {
		t.Errorf("numeric churn flag not parsed: %+v", rows[1])
	}
	if rows[2].Churned != 1 {
		t.Errorf("boolean churn flag not coerced: %+v", rows[2])
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	csv := "segment,price,units_sold\nSMB,100,10\n"

	_, err := ParseCSV(strings.NewReader(csv))
	if !errors.Is(err, domain.ErrDataFormat) {
		t.Fatalf("err = %v, want ErrDataFormat", err)
	}
}

func TestCleanDropsInvalidRows(t *testing.T) {
	rows := []domain.CustomerRecord{
		{Segment: "SMB", Price: 100, UnitsSold: 10, DiscountPercent: 0.05},
		{Segment: "", Price: 100, UnitsSold: 10},
		{Segment: "SMB", Price: -5, UnitsSold: 10},
		{Segment: "SMB", Price: 100, UnitsSold: -1},
		{Segment: "SMB", Price: 100, UnitsSold: 10, DiscountPercent: 1.5},
		{Segment: "Mid", Price: 500, UnitsSold: 20, DiscountPercent: 0.1, Churned: 7},
	}

	cleaned := Clean(rows)
	if len(cleaned) != 2 {
		t.Fatalf("got %d rows, want 2", len(cleaned))
	}

	if cleaned[1].Churned != 1 {
		t.Errorf("churn flag not normalized to 0/1: %+v", cleaned[1])
	}
}

func TestDerive(t *testing.T) {
	rows := Derive([]domain.CustomerRecord{
		{Segment: "SMB", Price: 100, DiscountPercent: 0.2, UnitsSold: 10},
	})

	if math.Abs(rows[0].EffectivePrice-80) > 1e-9 {
		t.Errorf("effective_price = %v, want 80", rows[0].EffectivePrice)
	}
	if math.Abs(rows[0].Revenue-800) > 1e-9 {
		t.Errorf("revenue = %v, want 800", rows[0].Revenue)
	}
}

func TestProcessEmptyAfterCleaning(t *testing.T) {
	csv := "segment,price,units_sold,discount_percent\nSMB,-1,10,0.05\n"

	_, err := Process(strings.NewReader(csv))
	if !errors.Is(err, domain.ErrDataFormat) {
		t.Fatalf("err = %v, want ErrDataFormat", err)
	}
}
