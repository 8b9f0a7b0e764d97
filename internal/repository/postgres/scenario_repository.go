package postgres

import (
	"context"
	"fmt"

	"pricingAdvisor/domain"

	"gorm.io/gorm"
)

type ScenarioRepository struct {
	DB *gorm.DB
}

func NewScenarioRepository(db *gorm.DB) *ScenarioRepository {
	return &ScenarioRepository{
		DB: db,
	}
}

func (r *ScenarioRepository) Save(ctx context.Context, result *domain.ScenarioResult) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to save scenario result: %w", err)
	}

	return nil
}

func (r *ScenarioRepository) FindRecent(ctx context.Context, limit int) ([]domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var results []domain.ScenarioResult
	err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find scenario results: %w", err)
	}

	return results, nil
}
