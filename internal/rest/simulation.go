package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pricingAdvisor/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SimulationHandler struct {
		validator         *validator.Validate
		simulationService SimulationService
		timeout           time.Duration
	}

	SimulationService interface {
		Simulate(ctx context.Context, summary domain.ScenarioSummary, priceChangePct, discountChangePct float64) (domain.ScenarioResult, error)
		FindOptimal(ctx context.Context, summary domain.ScenarioSummary, maxIncrease, maxDecrease int) (domain.ScenarioResult, error)
		History(ctx context.Context, limit int) ([]domain.ScenarioResult, error)
		PredictDemand(ctx context.Context, segment string, price, discountPercent float64) (float64, float64, error)
		PredictChurn(ctx context.Context, segment string, price, discountPercent, unitsSold float64) (float64, error)
	}

	ScenarioRequest struct {
		Segment           string  `json:"segment" validate:"required"`
		CurrentPrice      float64 `json:"current_price" validate:"required,gt=0"`
		CurrentDiscount   float64 `json:"current_discount" validate:"gte=0,lte=1"`
		CurrentUnits      float64 `json:"current_units" validate:"gte=0"`
		PriceChangePct    float64 `json:"price_change_pct"`
		DiscountChangePct float64 `json:"discount_change_pct"`
	}

	OptimalRequest struct {
		Segment         string  `json:"segment" validate:"required"`
		CurrentPrice    float64 `json:"current_price" validate:"required,gt=0"`
		CurrentDiscount float64 `json:"current_discount" validate:"gte=0,lte=1"`
		CurrentUnits    float64 `json:"current_units" validate:"gte=0"`
		MaxIncrease     int     `json:"max_increase" validate:"omitempty,min=5,max=200"`
		MaxDecrease     int     `json:"max_decrease" validate:"omitempty,min=5,max=90"`
	}

	DemandPredictionRequest struct {
		Segment         string  `json:"segment" validate:"required"`
		Price           float64 `json:"price" validate:"required,gt=0"`
		DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=1"`
	}

	ChurnPredictionRequest struct {
		Segment         string  `json:"segment" validate:"required"`
		Price           float64 `json:"price" validate:"required,gt=0"`
		DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=1"`
		UnitsSold       float64 `json:"units_sold" validate:"gte=0"`
	}

	DemandPrediction struct {
		Units   float64 `json:"predicted_units"`
		Revenue float64 `json:"predicted_revenue"`
	}

	ChurnPrediction struct {
		Probability float64 `json:"churn_probability"`
	}
)

func NewSimulationHandler(simulationService SimulationService) *SimulationHandler {
	return &SimulationHandler{
		validator:         validator.New(),
		simulationService: simulationService,
		timeout:           30 * time.Second,
	}
}

// POST /api/v1/simulations/scenario
func (h *SimulationHandler) Scenario(c echo.Context) error {
	var req ScenarioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.simulationService.Simulate(ctx, summaryFrom(req.Segment, req.CurrentPrice, req.CurrentDiscount, req.CurrentUnits), req.PriceChangePct, req.DiscountChangePct)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// POST /api/v1/simulations/optimal
func (h *SimulationHandler) Optimal(c echo.Context) error {
	var req OptimalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.simulationService.FindOptimal(ctx, summaryFrom(req.Segment, req.CurrentPrice, req.CurrentDiscount, req.CurrentUnits), req.MaxIncrease, req.MaxDecrease)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/simulations/history?limit=50
func (h *SimulationHandler) History(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit parameter"})
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	results, err := h.simulationService.History(ctx, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}

// POST /api/v1/predictions/demand
func (h *SimulationHandler) PredictDemand(c echo.Context) error {
	var req DemandPredictionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	units, revenue, err := h.simulationService.PredictDemand(ctx, req.Segment, req.Price, req.DiscountPercent)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(DemandPrediction{
		Units:   units,
		Revenue: revenue,
	}))
}

// POST /api/v1/predictions/churn
func (h *SimulationHandler) PredictChurn(c echo.Context) error {
	var req ChurnPredictionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prob, err := h.simulationService.PredictChurn(ctx, req.Segment, req.Price, req.DiscountPercent, req.UnitsSold)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ChurnPrediction{
		Probability: prob,
	}))
}

func summaryFrom(segment string, price, discount, units float64) domain.ScenarioSummary {
	return domain.ScenarioSummary{
		Segment:         segment,
		CurrentPrice:    price,
		CurrentDiscount: discount,
		CurrentUnits:    units,
	}
}
