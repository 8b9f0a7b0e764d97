package postgres

import (
	"context"
	"errors"
	"fmt"

	"pricingAdvisor/domain"

	"gorm.io/gorm"
)

type DatasetRepository struct {
	DB *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{
		DB: db,
	}
}

const recordInsertBatchSize = 500

// CreateWithRecords stores the dataset header and all its rows in one
// transaction; a dataset snapshot is never partially visible.
func (r *DatasetRepository) CreateWithRecords(ctx context.Context, dataset *domain.Dataset, rows []domain.CustomerRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dataset).Error; err != nil {
			return fmt.Errorf("failed to create dataset: %w", err)
		}

		for i := range rows {
			rows[i].DatasetID = dataset.ID
		}

		if err := tx.CreateInBatches(rows, recordInsertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert records: %w", err)
		}

		return nil
	})
}

func (r *DatasetRepository) FindAll(ctx context.Context) ([]domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var datasets []domain.Dataset
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&datasets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find datasets: %w", err)
	}

	return datasets, nil
}

func (r *DatasetRepository) FindByID(ctx context.Context, id string) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("context error: %w", err)
	}

	var dataset domain.Dataset
	err := r.DB.WithContext(ctx).First(&dataset, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Dataset{}, domain.ErrDatasetNotFound
		}
		return domain.Dataset{}, fmt.Errorf("failed to find dataset: %w", err)
	}

	return dataset, nil
}

func (r *DatasetRepository) FindLatest(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("context error: %w", err)
	}

	var dataset domain.Dataset
	err := r.DB.WithContext(ctx).Order("created_at DESC").First(&dataset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Dataset{}, domain.ErrDatasetNotFound
		}
		return domain.Dataset{}, fmt.Errorf("failed to find latest dataset: %w", err)
	}

	return dataset, nil
}

func (r *DatasetRepository) FindRecords(ctx context.Context, datasetID string) ([]domain.CustomerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.CustomerRecord
	err := r.DB.WithContext(ctx).Where("dataset_id = ?", datasetID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customer records: %w", err)
	}

	return rows, nil
}
