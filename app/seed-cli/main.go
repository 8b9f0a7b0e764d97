package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"pricingAdvisor/business/pipeline"
	"pricingAdvisor/business/synthetic"

	"github.com/schollz/progressbar/v3"
)

// Generates a synthetic SaaS pricing dataset as CSV, ready for the upload
// endpoint or for offline analysis.
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	records := flag.Int("n", 2000, "Number of records to generate")
	seed := flag.Int64("seed", 42, "Random seed")
	out := flag.String("out", "synthetic_saas_data.csv", "Output CSV path")
	flag.Parse()

	if *records <= 0 {
		log.Fatalf("Usage: seed-cli -n 2000 -out data.csv")
	}

	rows := pipeline.Derive(pipeline.Clean(synthetic.GenerateSeeded(*records, *seed)))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"customer_id", "segment", "price", "units_sold",
		"discount_percent", "churned", "month",
	}
	if err := w.Write(header); err != nil {
		log.Fatalf("write header: %v", err)
	}

	bar := progressbar.Default(int64(len(rows)))

	for _, row := range rows {
		record := []string{
			row.CustomerID,
			row.Segment,
			strconv.FormatFloat(row.Price, 'f', 2, 64),
			strconv.Itoa(row.UnitsSold),
			strconv.FormatFloat(row.DiscountPercent, 'f', 2, 64),
			strconv.Itoa(row.Churned),
			row.Month,
		}
		if err := w.Write(record); err != nil {
			log.Fatalf("write record: %v", err)
		}
		_ = bar.Add(1)
	}

	fmt.Printf("wrote %d records to %s\n", len(rows), *out)
}
