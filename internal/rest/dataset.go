package rest

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"pricingAdvisor/business/segmentation"
	"pricingAdvisor/domain"
	"pricingAdvisor/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	DatasetHandler struct {
		validator      *validator.Validate
		datasetService DatasetService
		timeout        time.Duration
	}

	DatasetService interface {
		IngestCSV(ctx context.Context, fileName string, r io.Reader) (domain.Dataset, error)
		GenerateSynthetic(ctx context.Context, n int) (domain.Dataset, error)
		ListDatasets(ctx context.Context) ([]domain.Dataset, error)
		SegmentDataset(ctx context.Context, datasetID string, k int) (segmentation.Result, error)
	}

	GenerateRequest struct {
		Records int `json:"records" validate:"omitempty,min=10,max=100000"`
	}

	SegmentCluster struct {
		Label string `json:"label"`
		Size  int    `json:"size"`
	}

	SegmentView struct {
		DatasetID string                  `json:"dataset_id"`
		Clusters  []SegmentCluster        `json:"clusters"`
		Rows      []domain.CustomerRecord `json:"rows"`
	}
)

func NewDatasetHandler(datasetService DatasetService) *DatasetHandler {
	return &DatasetHandler{
		validator:      validator.New(),
		datasetService: datasetService,
		timeout:        30 * time.Second,
	}
}

// POST /api/v1/datasets/upload (multipart CSV)
func (h *DatasetHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing file field"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dataset, err := h.datasetService.IngestCSV(ctx, fileHeader.Filename, file)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(dataset))
}

// POST /api/v1/datasets/generate
func (h *DatasetHandler) Generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dataset, err := h.datasetService.GenerateSynthetic(ctx, req.Records)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(dataset))
}

// GET /api/v1/datasets
func (h *DatasetHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	datasets, err := h.datasetService.ListDatasets(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(datasets))
}

// GET /api/v1/datasets/:id/segments?clusters=3
func (h *DatasetHandler) Segments(c echo.Context) error {
	datasetID := c.Param("id")

	clusters := 3
	if v := c.QueryParam("clusters"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid clusters parameter"})
		}
		clusters = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.datasetService.SegmentDataset(ctx, datasetID, clusters)
	if err != nil {
		return err
	}

	view := SegmentView{
		DatasetID: datasetID,
		Clusters:  make([]SegmentCluster, len(result.Labels)),
		Rows:      result.Rows,
	}
	for i, label := range result.Labels {
		view.Clusters[i] = SegmentCluster{Label: label, Size: result.Sizes[i]}
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}
