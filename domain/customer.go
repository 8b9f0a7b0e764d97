package domain

import (
	"time"
)

// CREATE TABLE public.customer_records (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     dataset_id       UUID NOT NULL,
//     customer_id      TEXT,
//     segment          TEXT NOT NULL,
//     price            NUMERIC,
//     discount_percent NUMERIC,
//     units_sold       BIGINT,
//     churned          INT,
//     effective_price  NUMERIC,
//     revenue          NUMERIC,
//     segment_cluster  TEXT,
//     month            TEXT
// );

type CustomerRecord struct {
	ID              uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	DatasetID       string  `gorm:"column:dataset_id;type:uuid;index;not null" json:"dataset_id"`
	CustomerID      string  `gorm:"column:customer_id;type:text" json:"customer_id"`
	Segment         string  `gorm:"column:segment;type:text;not null" json:"segment"`
	Price           float64 `gorm:"column:price;type:numeric" json:"price"`
	DiscountPercent float64 `gorm:"column:discount_percent;type:numeric" json:"discount_percent"`
	UnitsSold       int     `gorm:"column:units_sold" json:"units_sold"`
	Churned         int     `gorm:"column:churned" json:"churned"`

	// Derived by the feature pipeline.
	EffectivePrice float64 `gorm:"column:effective_price;type:numeric" json:"effective_price"`
	Revenue        float64 `gorm:"column:revenue;type:numeric" json:"revenue"`

	// Enrichment written by the segmentation engine; not a model feature.
	SegmentCluster string `gorm:"column:segment_cluster;type:text" json:"segment_cluster,omitempty"`

	Month string `gorm:"column:month;type:text" json:"month,omitempty"`
}

func (CustomerRecord) TableName() string {
	return "customer_records"
}

type Dataset struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Source    string    `gorm:"column:source;type:text;not null" json:"source"`
	FileName  string    `gorm:"column:file_name;type:text" json:"file_name,omitempty"`
	RowCount  int       `gorm:"column:row_count" json:"row_count"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Dataset) TableName() string {
	return "datasets"
}

const (
	DatasetSourceUpload    = "upload"
	DatasetSourceSynthetic = "synthetic"
)
