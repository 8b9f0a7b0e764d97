package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pricingAdvisor/domain"
	"pricingAdvisor/pkg/logger"
)

// Required CSV columns. churned is optional for pure simulation datasets but
// required before the churn model can be trained.
var requiredColumns = []string{"segment", "price", "discount_percent", "units_sold"}

// ParseCSV reads a raw tabular dataset into customer records. The header must
// contain every required column; rows whose required values fail to parse are
// dropped, matching the cleaning semantics of Clean.
func ParseCSV(r io.Reader) ([]domain.CustomerRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read header: %v", domain.ErrDataFormat, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", domain.ErrDataFormat, name)
		}
	}

	var rows []domain.CustomerRecord
	dropped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataFormat, err)
		}

		row, ok := parseRow(record, col)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	if dropped > 0 {
		logger.Warn("dropped unparseable rows during CSV ingestion", "dropped", dropped, "kept", len(rows))
	}

	return rows, nil
}

func parseRow(record []string, col map[string]int) (domain.CustomerRecord, bool) {
	field := func(name string) (string, bool) {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	var row domain.CustomerRecord

	seg, _ := field("segment")
	row.Segment = seg

	priceStr, _ := field("price")
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return row, false
	}
	row.Price = price

	discountStr, _ := field("discount_percent")
	discount, err := strconv.ParseFloat(discountStr, 64)
	if err != nil {
		return row, false
	}
	row.DiscountPercent = discount

	unitsStr, _ := field("units_sold")
	units, err := strconv.Atoi(unitsStr)
	if err != nil {
		return row, false
	}
	row.UnitsSold = units

	if v, ok := field("churned"); ok && v != "" {
		row.Churned = coerceChurn(v)
	}
	if v, ok := field("customer_id"); ok {
		row.CustomerID = v
	}
	if v, ok := field("month"); ok {
		row.Month = v
	}

	return row, true
}

func coerceChurn(v string) int {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return 1
	default:
		return 0
	}
}

// Clean drops rows with missing or out-of-range required fields and
// normalizes the churn flag to 0/1.
func Clean(rows []domain.CustomerRecord) []domain.CustomerRecord {
	out := make([]domain.CustomerRecord, 0, len(rows))

	for _, row := range rows {
		if row.Segment == "" {
			continue
		}
		if row.Price <= 0 || row.UnitsSold < 0 {
			continue
		}
		if row.DiscountPercent < 0 || row.DiscountPercent > 1 {
			continue
		}
		if row.Churned != 0 {
			row.Churned = 1
		}
		out = append(out, row)
	}

	return out
}

// Derive adds effective_price and revenue to every row.
func Derive(rows []domain.CustomerRecord) []domain.CustomerRecord {
	out := make([]domain.CustomerRecord, len(rows))

	for i, row := range rows {
		row.EffectivePrice = row.Price * (1 - row.DiscountPercent)
		row.Revenue = row.EffectivePrice * float64(row.UnitsSold)
		out[i] = row
	}

	return out
}

// Process runs the full ingestion pipeline: parse, clean, derive.
func Process(r io.Reader) ([]domain.CustomerRecord, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}

	rows = Derive(Clean(rows))
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no usable rows after cleaning", domain.ErrDataFormat)
	}

	return rows, nil
}
