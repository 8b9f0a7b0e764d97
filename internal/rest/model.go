package rest

import (
	"context"
	"net/http"
	"time"

	"pricingAdvisor/business/training"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ModelHandler struct {
		validator       *validator.Validate
		trainingService TrainingService
		timeout         time.Duration
	}

	TrainingService interface {
		Train(ctx context.Context, datasetID string, clusters int) (training.Report, error)
		Trained() bool
	}

	TrainRequest struct {
		DatasetID string `json:"dataset_id" validate:"omitempty,uuid"`
		Clusters  int    `json:"clusters" validate:"omitempty,min=2,max=10"`
	}

	ModelStatus struct {
		Trained bool `json:"trained"`
	}
)

func NewModelHandler(trainingService TrainingService) *ModelHandler {
	return &ModelHandler{
		validator:       validator.New(),
		trainingService: trainingService,
		// Model fitting is CPU-bound and can take a while on large
		// snapshots; bounded latency is imposed here, not in the core.
		timeout: 120 * time.Second,
	}
}

// POST /api/v1/models/train
func (h *ModelHandler) Train(c echo.Context) error {
	var req TrainRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.trainingService.Train(ctx, req.DatasetID, req.Clusters)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

// GET /api/v1/models/status
func (h *ModelHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(ModelStatus{
		Trained: h.trainingService.Trained(),
	}))
}
