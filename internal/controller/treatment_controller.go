package controller

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"turftrack/internal/middleware"
	"turftrack/internal/model"
	"turftrack/internal/repository"
	"turftrack/internal/service"
)

// TreatmentController handles treatment HTTP requests
type TreatmentController struct {
	treatments service.TreatmentService
	logger     *slog.Logger
}

// NewTreatmentController creates a new treatment controller
func NewTreatmentController(treatments service.TreatmentService, logger *slog.Logger) *TreatmentController {
	return &TreatmentController{treatments: treatments, logger: logger}
}

// Create handles POST /v1/treatments
func (c *TreatmentController) Create(ctx *gin.Context) {
	var input service.TreatmentInput
	if !bindJSON(ctx, &input) {
		return
	}

	treatment, err := c.treatments.Create(input, middleware.CurrentUserID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("treatment created",
		"treatment_id", treatment.ID,
		"treatment_type", treatment.TreatmentType,
		"date", treatment.Date.String(),
		"plot_count", len(treatment.Plots),
	)
	ctx.JSON(http.StatusCreated, treatment)
}

// List handles GET /v1/treatments
// Query parameters:
//   - treatment_type (optional): water, fertilizer, chemical, or mowing
//   - date (optional): YYYY-MM-DD
//   - plot (optional): filter to treatments applied to a plot
func (c *TreatmentController) List(ctx *gin.Context) {
	var filter repository.TreatmentFilter

	if raw := ctx.Query("treatment_type"); raw != "" {
		t := model.TreatmentType(raw)
		if !t.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid treatment_type",
				"message": "treatment_type must be one of: water, fertilizer, chemical, mowing",
			})
			return
		}
		filter.Type = &t
	}
	if raw := ctx.Query("date"); raw != "" {
		date, err := model.ParseDate(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid date",
				"message": "date must be in YYYY-MM-DD format",
			})
			return
		}
		filter.Date = &date
	}
	if raw := ctx.Query("plot"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid plot",
				"message": "plot must be a valid unsigned integer",
			})
			return
		}
		plotID := uint(id)
		filter.PlotID = &plotID
	}

	treatments, err := c.treatments.List(filter)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	if treatments == nil {
		treatments = []model.Treatment{}
	}
	ctx.JSON(http.StatusOK, treatments)
}

// Get handles GET /v1/treatments/:id
func (c *TreatmentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	treatment, err := c.treatments.Get(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, treatment)
}

// Update handles PATCH /v1/treatments/:id
func (c *TreatmentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var patch service.TreatmentPatch
	if !bindJSON(ctx, &patch) {
		return
	}

	treatment, err := c.treatments.Update(id, patch)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("treatment updated", "treatment_id", treatment.ID)
	ctx.JSON(http.StatusOK, treatment)
}

// Delete handles DELETE /v1/treatments/:id
func (c *TreatmentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.treatments.Delete(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("treatment deleted", "treatment_id", id)
	ctx.Status(http.StatusNoContent)
}
