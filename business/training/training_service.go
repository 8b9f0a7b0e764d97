package training

import (
	"context"
	"fmt"
	"io"
	"time"

	"pricingAdvisor/business/churn"
	"pricingAdvisor/business/demand"
	"pricingAdvisor/business/pipeline"
	"pricingAdvisor/business/segmentation"
	"pricingAdvisor/business/simulator"
	"pricingAdvisor/business/synthetic"
	"pricingAdvisor/domain"
	"pricingAdvisor/pkg/logger"
	"pricingAdvisor/pkg/metrics"

	"github.com/google/uuid"
)

// DatasetRepository contract interface
type DatasetRepository interface {
	CreateWithRecords(ctx context.Context, dataset *domain.Dataset, rows []domain.CustomerRecord) error
	FindAll(ctx context.Context) ([]domain.Dataset, error)
	FindByID(ctx context.Context, id string) (domain.Dataset, error)
	FindLatest(ctx context.Context) (domain.Dataset, error)
	FindRecords(ctx context.Context, datasetID string) ([]domain.CustomerRecord, error)
}

// Report summarizes one training run.
type Report struct {
	DatasetID  string `json:"dataset_id,omitempty"`
	Rows       int    `json:"rows"`
	Clusters   int    `json:"clusters,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Service owns dataset ingestion and the train-and-swap lifecycle of the
// demand/churn model pair. The registry is the only shared state; every
// training run builds fresh models and swaps them in as a unit.
type Service struct {
	datasetRepo DatasetRepository
	registry    *simulator.Registry
	demandCfg   demand.Config
	churnCfg    churn.Config
}

func NewService(datasetRepo DatasetRepository, registry *simulator.Registry) *Service {
	return &Service{
		datasetRepo: datasetRepo,
		registry:    registry,
		demandCfg:   demand.DefaultConfig(),
		churnCfg:    churn.DefaultConfig(),
	}
}

// IngestCSV runs the feature pipeline on an uploaded file and stores the
// result as a new dataset snapshot.
func (s *Service) IngestCSV(ctx context.Context, fileName string, r io.Reader) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("context error: %w", err)
	}

	rows, err := pipeline.Process(r)
	if err != nil {
		logger.Error("dataset ingestion failed", "file", fileName, "error", err)
		return domain.Dataset{}, err
	}

	dataset := domain.Dataset{
		ID:       uuid.NewString(),
		Source:   domain.DatasetSourceUpload,
		FileName: fileName,
		RowCount: len(rows),
	}

	if err := s.datasetRepo.CreateWithRecords(ctx, &dataset, rows); err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to store dataset: %w", err)
	}

	logger.Info("dataset ingested", "dataset_id", dataset.ID, "rows", len(rows), "file", fileName)

	return dataset, nil
}

// GenerateSynthetic creates and stores a deterministic synthetic dataset.
func (s *Service) GenerateSynthetic(ctx context.Context, n int) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("context error: %w", err)
	}

	if n <= 0 {
		n = 2000
	}

	rows := pipeline.Derive(pipeline.Clean(synthetic.Generate(n)))

	dataset := domain.Dataset{
		ID:       uuid.NewString(),
		Source:   domain.DatasetSourceSynthetic,
		RowCount: len(rows),
	}

	if err := s.datasetRepo.CreateWithRecords(ctx, &dataset, rows); err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to store dataset: %w", err)
	}

	logger.Info("synthetic dataset generated", "dataset_id", dataset.ID, "rows", len(rows))

	return dataset, nil
}

func (s *Service) ListDatasets(ctx context.Context) ([]domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.datasetRepo.FindAll(ctx)
}

// SegmentDataset runs the k-means enrichment over a stored dataset and
// returns the cluster view. Analysis only; does not touch the models.
func (s *Service) SegmentDataset(ctx context.Context, datasetID string, k int) (segmentation.Result, error) {
	if err := ctx.Err(); err != nil {
		return segmentation.Result{}, fmt.Errorf("context error: %w", err)
	}

	if k <= 0 {
		k = 3
	}

	rows, err := s.loadRows(ctx, datasetID)
	if err != nil {
		return segmentation.Result{}, err
	}

	return segmentation.Cluster(rows, k)
}

// Train fits a fresh demand/churn pair on the full snapshot of a dataset and
// swaps it into the registry. An empty datasetID means the latest dataset.
// When clusters > 0 the segmentation enrichment runs first; cluster labels
// are logged but the models keep training on the raw segment column.
func (s *Service) Train(ctx context.Context, datasetID string, clusters int) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.loadRows(ctx, datasetID)
	if err != nil {
		return Report{}, err
	}

	if clusters > 0 {
		result, err := segmentation.Cluster(rows, clusters)
		if err != nil {
			return Report{}, fmt.Errorf("segmentation failed: %w", err)
		}
		rows = result.Rows
		logger.Info("segmentation enrichment applied", "clusters", clusters, "labels", result.Labels)
	}

	report, err := s.fitAndSwap(rows)
	if err != nil {
		return Report{}, err
	}

	report.DatasetID = datasetID
	report.Clusters = clusters

	return report, nil
}

// TrainSyntheticSnapshot trains the pair on freshly generated synthetic data
// without persisting a dataset. Used by startup training and the optional
// auto-train fallback.
func (s *Service) TrainSyntheticSnapshot(ctx context.Context, n int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if n <= 0 {
		n = 2000
	}

	rows := pipeline.Derive(pipeline.Clean(synthetic.Generate(n)))

	_, err := s.fitAndSwap(rows)
	return err
}

func (s *Service) Trained() bool {
	return s.registry.Trained()
}

func (s *Service) loadRows(ctx context.Context, datasetID string) ([]domain.CustomerRecord, error) {
	if datasetID == "" {
		latest, err := s.datasetRepo.FindLatest(ctx)
		if err != nil {
			return nil, err
		}
		datasetID = latest.ID
	} else if _, err := s.datasetRepo.FindByID(ctx, datasetID); err != nil {
		return nil, err
	}

	rows, err := s.datasetRepo.FindRecords(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: dataset %s has no rows", domain.ErrDataFormat, datasetID)
	}

	return rows, nil
}

func (s *Service) fitAndSwap(rows []domain.CustomerRecord) (Report, error) {
	start := time.Now()

	demandModel := demand.NewModel(s.demandCfg)
	if err := demandModel.Train(rows); err != nil {
		metrics.TrainingRuns.WithLabelValues("error").Inc()
		return Report{}, fmt.Errorf("demand training failed: %w", err)
	}

	churnModel := churn.NewModel(s.churnCfg)
	if err := churnModel.Train(rows); err != nil {
		metrics.TrainingRuns.WithLabelValues("error").Inc()
		return Report{}, fmt.Errorf("churn training failed: %w", err)
	}

	// Swap both models as one unit; in-flight predictions keep their old
	// snapshot.
	s.registry.Swap(&simulator.ModelPair{
		Demand: demandModel,
		Churn:  churnModel,
	})

	elapsed := time.Since(start)
	metrics.TrainingDuration.Observe(elapsed.Seconds())
	metrics.TrainingRuns.WithLabelValues("success").Inc()

	logger.Info("model pair trained and swapped", "rows", len(rows), "duration", elapsed)

	return Report{
		Rows:       len(rows),
		DurationMs: elapsed.Milliseconds(),
	}, nil
}
