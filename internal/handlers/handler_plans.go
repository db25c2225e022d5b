package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	portssvc "github.com/planfirst/financial_planning_app/internal/core/ports/services"
	"github.com/planfirst/financial_planning_app/internal/dto"
	"github.com/planfirst/financial_planning_app/internal/middleware"
)

// planHandler handles stored plan snapshots and their backups.
type planHandler struct {
	planService portssvc.PlanSvcFacade
}

func newPlanHandler(ps portssvc.PlanSvcFacade) *planHandler {
	return &planHandler{planService: ps}
}

// registerPlanRoutes registers the plan persistence routes.
func registerPlanRoutes(rg *gin.RouterGroup, planService portssvc.PlanSvcFacade) {
	h := newPlanHandler(planService)

	plans := rg.Group("/plans")
	{
		plans.POST("", h.createPlan)
		plans.GET("", h.listPlans)
		plans.GET("/sample", h.samplePlan)
		plans.GET("/:planID", h.getPlan)
		plans.PUT("/:planID", h.updatePlan)
		plans.DELETE("/:planID", h.deletePlan)
		plans.POST("/:planID/backups", h.createBackup)
		plans.GET("/:planID/backups", h.listBackups)
		plans.POST("/:planID/backups/:backupID/restore", h.restoreBackup)
		plans.DELETE("/:planID/backups/:backupID", h.deleteBackup)
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

// createPlan godoc
// @Summary Store a new plan
// @Description Saves a named snapshot of a finance bundle
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to save plan"
// @Security BearerAuth
// @Router /plans [post]
func (h *planHandler) createPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePlan", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	record, err := h.planService.CreatePlan(c.Request.Context(), req.Name, req.Description, req.Bundle, req.Options.ToPlanOptions())
	if err != nil {
		respondError(c, err, "Failed to save plan")
		return
	}

	logger.Info("Plan created", slog.String("plan_id", record.ID.String()))
	c.JSON(http.StatusCreated, dto.ToPlanResponse(record))
}

// listPlans godoc
// @Summary List stored plans
// @Description Pages through stored plans, newest first
// @Tags plans
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.PlanResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list plans"
// @Security BearerAuth
// @Router /plans [get]
func (h *planHandler) listPlans(c *gin.Context) {
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	records, err := h.planService.ListPlans(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list plans")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPlanResponse(records))
}

// samplePlan godoc
// @Summary Get the sample dataset
// @Description Returns the built-in demonstration finance bundle without persisting it
// @Tags plans
// @Produce json
// @Success 200 {object} dto.SamplePlanResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /plans/sample [get]
func (h *planHandler) samplePlan(c *gin.Context) {
	bundle, opts := h.planService.SamplePlan(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToSamplePlanResponse(bundle, opts))
}

// getPlan godoc
// @Summary Get a stored plan
// @Description Retrieves one plan snapshot by id
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} ErrorResponse "Invalid plan ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Plan not found"
// @Security BearerAuth
// @Router /plans/{planID} [get]
func (h *planHandler) getPlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}

	record, err := h.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err, "Failed to retrieve plan")
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanResponse(record))
}

// updatePlan godoc
// @Summary Update a stored plan
// @Description Overwrites a plan's contents, backing up the previous state first
// @Tags plans
// @Accept json
// @Produce json
// @Param planID path string true "Plan ID"
// @Param plan body dto.UpdatePlanRequest true "New plan contents"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Plan not found"
// @Failure 500 {object} ErrorResponse "Failed to update plan"
// @Security BearerAuth
// @Router /plans/{planID} [put]
func (h *planHandler) updatePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}

	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePlan", slog.String("error", err.Error()))
		respondBindError(c, err)
		return
	}

	record, err := h.planService.UpdatePlan(c.Request.Context(), planID, req.Name, req.Description, req.Bundle, req.Options.ToPlanOptions())
	if err != nil {
		respondError(c, err, "Failed to update plan")
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanResponse(record))
}

// deletePlan godoc
// @Summary Delete a stored plan
// @Description Removes a plan and its backups
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid plan ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Plan not found"
// @Security BearerAuth
// @Router /plans/{planID} [delete]
func (h *planHandler) deletePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), planID); err != nil {
		respondError(c, err, "Failed to delete plan")
		return
	}

	c.Status(http.StatusNoContent)
}

// createBackup godoc
// @Summary Back up a plan
// @Description Takes a labeled snapshot of the plan's current state
// @Tags plans
// @Accept json
// @Produce json
// @Param planID path string true "Plan ID"
// @Param backup body dto.CreateBackupRequest false "Backup label"
// @Success 201 {object} dto.PlanBackupResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Plan not found"
// @Security BearerAuth
// @Router /plans/{planID}/backups [post]
func (h *planHandler) createBackup(c *gin.Context) {
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}

	var req dto.CreateBackupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	backup, err := h.planService.CreateBackup(c.Request.Context(), planID, req.Label)
	if err != nil {
		respondError(c, err, "Failed to back up plan")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPlanBackupResponse(backup))
}

// listBackups godoc
// @Summary List a plan's backups
// @Description Returns the plan's backups, newest first
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {array} dto.PlanBackupResponse
// @Failure 400 {object} ErrorResponse "Invalid plan ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list backups"
// @Security BearerAuth
// @Router /plans/{planID}/backups [get]
func (h *planHandler) listBackups(c *gin.Context) {
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}

	backups, err := h.planService.ListBackups(c.Request.Context(), planID)
	if err != nil {
		respondError(c, err, "Failed to list backups")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPlanBackupResponse(backups))
}

// restoreBackup godoc
// @Summary Restore a plan from a backup
// @Description Replaces the plan's contents with the backup's, backing up the current state first
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Param backupID path string true "Backup ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Plan or backup not found"
// @Failure 500 {object} ErrorResponse "Failed to restore plan"
// @Security BearerAuth
// @Router /plans/{planID}/backups/{backupID}/restore [post]
func (h *planHandler) restoreBackup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}
	backupID, ok := parseIDParam(c, "backupID")
	if !ok {
		return
	}

	record, err := h.planService.RestoreBackup(c.Request.Context(), planID, backupID)
	if err != nil {
		respondError(c, err, "Failed to restore plan")
		return
	}

	logger.Info("Plan restored",
		slog.String("plan_id", planID.String()),
		slog.String("backup_id", backupID.String()))
	c.JSON(http.StatusOK, dto.ToPlanResponse(record))
}

// deleteBackup godoc
// @Summary Delete a plan backup
// @Description Removes one backup of a plan
// @Tags plans
// @Produce json
// @Param planID path string true "Plan ID"
// @Param backupID path string true "Backup ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Backup not found"
// @Security BearerAuth
// @Router /plans/{planID}/backups/{backupID} [delete]
func (h *planHandler) deleteBackup(c *gin.Context) {
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}
	backupID, ok := parseIDParam(c, "backupID")
	if !ok {
		return
	}

	if err := h.planService.DeleteBackup(c.Request.Context(), planID, backupID); err != nil {
		respondError(c, err, "Failed to delete backup")
		return
	}

	c.Status(http.StatusNoContent)
}
