package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/planfirst/financial_planning_app/internal/core/ports/services"
	"github.com/planfirst/financial_planning_app/internal/dto"
	"github.com/planfirst/financial_planning_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// planningHandler handles the calculator endpoints: plan evaluation,
// statements, target solving, scenarios and projections.
type planningHandler struct {
	plannerService  portssvc.PlannerSvc
	timelineService portssvc.TimelineSvc
	scenarioService portssvc.ScenarioSvc
}

func newPlanningHandler(ps portssvc.PlannerSvc, ts portssvc.TimelineSvc, ss portssvc.ScenarioSvc) *planningHandler {
	return &planningHandler{
		plannerService:  ps,
		timelineService: ts,
		scenarioService: ss,
	}
}

// registerPlanningRoutes registers the calculator routes.
func registerPlanningRoutes(rg *gin.RouterGroup, ps portssvc.PlannerSvc, ts portssvc.TimelineSvc, ss portssvc.ScenarioSvc) {
	h := newPlanningHandler(ps, ts, ss)

	planning := rg.Group("/planning")
	{
		planning.POST("/compute", h.compute)
		planning.POST("/metrics", h.metrics)
		planning.POST("/statements", h.statements)
		planning.POST("/target-sales", h.targetSales)
		planning.POST("/scenarios", h.scenarios)
		planning.POST("/sensitivity", h.sensitivity)
		planning.POST("/timeline", h.timeline)
	}
}

// compute godoc
// @Summary Evaluate a financial plan
// @Description Computes the annual P&L amounts, KPI sentinels and summary metrics for a finance bundle
// @Tags planning
// @Accept json
// @Produce json
// @Param plan body dto.ComputeRequest true "Finance bundle and options"
// @Success 200 {object} dto.ComputeResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Computation failed"
// @Security BearerAuth
// @Router /planning/compute [post]
func (h *planningHandler) compute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Compute", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	plan, err := h.plannerService.PlanFromBundle(c.Request.Context(), req.Bundle, req.Options.ToPlanOptions())
	if err != nil {
		respondError(c, err, "Failed to build plan")
		return
	}

	result, err := h.plannerService.Compute(c.Request.Context(), plan, req.ComputeOptions())
	if err != nil {
		logger.Error("Failed to compute plan", slog.String("error", err.Error()))
		respondError(c, err, "Failed to compute plan")
		return
	}

	metrics := h.plannerService.SummarizeMetrics(c.Request.Context(), result)
	c.JSON(http.StatusOK, dto.ToComputeResponse(result, metrics))
}

// metrics godoc
// @Summary Summarize computed amounts
// @Description Reduces an annual amounts map to ratio-level metrics
// @Tags planning
// @Accept json
// @Produce json
// @Param amounts body dto.MetricsRequest true "Annual amounts keyed by line item code"
// @Success 200 {object} domain.PlanMetrics
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /planning/metrics [post]
func (h *planningHandler) metrics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Metrics", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	metrics := h.plannerService.SummarizeMetrics(c.Request.Context(), req.ToComputeResult())
	c.JSON(http.StatusOK, metrics)
}

// statements godoc
// @Summary Build financial statements
// @Description Produces the monthly P&L, cash flow and balance sheet detail plus annual rollups
// @Tags planning
// @Accept json
// @Produce json
// @Param plan body dto.StatementsRequest true "Finance bundle and options"
// @Success 200 {object} dto.StatementsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Computation failed"
// @Security BearerAuth
// @Router /planning/statements [post]
func (h *planningHandler) statements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StatementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Statements", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	plan, err := h.plannerService.PlanFromBundle(c.Request.Context(), req.Bundle, req.Options.ToPlanOptions())
	if err != nil {
		respondError(c, err, "Failed to build plan")
		return
	}

	opts := dto.ComputeRequest{SalesOverride: req.SalesOverride, AmountOverrides: req.AmountOverrides}.ComputeOptions()
	result, err := h.plannerService.Compute(c.Request.Context(), plan, opts)
	if err != nil {
		logger.Error("Failed to build statements", slog.String("error", err.Error()))
		respondError(c, err, "Failed to build statements")
		return
	}
	if result.Statements == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Bundle is missing statement inputs"})
		return
	}

	c.JSON(http.StatusOK, dto.StatementsResponse{Statements: result.Statements})
}

// targetSales godoc
// @Summary Solve for required sales
// @Description Finds the sales level whose ordinary income reaches the target, by bisection
// @Tags planning
// @Accept json
// @Produce json
// @Param target body dto.TargetSalesRequest true "Finance bundle, target ordinary income and optional bracket"
// @Success 200 {object} dto.TargetSalesResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Solve failed"
// @Security BearerAuth
// @Router /planning/target-sales [post]
func (h *planningHandler) targetSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TargetSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TargetSales", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	plan, err := h.plannerService.PlanFromBundle(c.Request.Context(), req.Bundle, req.Options.ToPlanOptions())
	if err != nil {
		respondError(c, err, "Failed to build plan")
		return
	}

	low, high := decimal.Zero, decimal.Zero
	if req.Low != nil {
		low = *req.Low
	}
	if req.High != nil {
		high = *req.High
	}

	solve, result, err := h.plannerService.SolveTargetSales(c.Request.Context(), plan, req.Target, low, high)
	if err != nil {
		logger.Error("Failed to solve target sales", slog.String("error", err.Error()))
		respondError(c, err, "Failed to solve target sales")
		return
	}

	c.JSON(http.StatusOK, dto.TargetSalesResponse{Result: *solve, Amounts: result.Amounts})
}

// scenarios godoc
// @Summary Build the scenario comparison table
// @Description Evaluates the standard what-if columns for a simple plan
// @Tags planning
// @Accept json
// @Produce json
// @Param scenarios body dto.ScenarioTableRequest true "Base plan, current plan and non-operating adjustments"
// @Success 200 {object} dto.ScenarioTableResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Computation failed"
// @Security BearerAuth
// @Router /planning/scenarios [post]
func (h *planningHandler) scenarios(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ScenarioTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Scenarios", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	rows, err := h.scenarioService.ScenarioTable(c.Request.Context(), req.Base, req.CurrentOrBase(), req.NonOperating, req.TargetOrdinary, req.Mode())
	if err != nil {
		logger.Error("Failed to build scenario table", slog.String("error", err.Error()))
		respondError(c, err, "Failed to build scenario table")
		return
	}

	c.JSON(http.StatusOK, dto.ScenarioTableResponse{Rows: rows})
}

// sensitivity godoc
// @Summary Run a sensitivity sweep
// @Description Recomputes the plan for each multiplier applied to one driver
// @Tags planning
// @Accept json
// @Produce json
// @Param sweep body dto.SensitivityRequest true "Finance bundle, driver and multipliers"
// @Success 200 {object} dto.SensitivityResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Computation failed"
// @Security BearerAuth
// @Router /planning/sensitivity [post]
func (h *planningHandler) sensitivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SensitivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Sensitivity", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	plan, err := h.plannerService.PlanFromBundle(c.Request.Context(), req.Bundle, req.Options.ToPlanOptions())
	if err != nil {
		respondError(c, err, "Failed to build plan")
		return
	}

	result, err := h.scenarioService.Sensitivity(c.Request.Context(), plan, req.Driver, req.Multipliers)
	if err != nil {
		logger.Error("Failed to run sensitivity sweep", slog.String("error", err.Error()), slog.String("driver", req.Driver))
		respondError(c, err, "Failed to run sensitivity sweep")
		return
	}

	c.JSON(http.StatusOK, dto.SensitivityResponse{Result: result})
}

// timeline godoc
// @Summary Build the multi-year projection
// @Description Projects the plan month by month over the forecast horizon with annual rollups, DSCR and free cash flow
// @Tags planning
// @Accept json
// @Produce json
// @Param timeline body dto.TimelineRequest true "Finance bundle, options and horizon"
// @Success 200 {object} dto.TimelineResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Computation failed"
// @Security BearerAuth
// @Router /planning/timeline [post]
func (h *planningHandler) timeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Timeline", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	plan, err := h.plannerService.PlanFromBundle(c.Request.Context(), req.Bundle, req.Options.ToPlanOptions())
	if err != nil {
		respondError(c, err, "Failed to build plan")
		return
	}

	timeline, err := h.timelineService.BuildTimeline(c.Request.Context(), req.Bundle, plan, req.Horizon())
	if err != nil {
		logger.Error("Failed to build timeline", slog.String("error", err.Error()))
		respondError(c, err, "Failed to build timeline")
		return
	}

	c.JSON(http.StatusOK, dto.TimelineResponse{Timeline: timeline})
}
