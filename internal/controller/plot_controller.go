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

// PlotController handles plot and hierarchy HTTP requests
type PlotController struct {
	plots      service.PlotService
	treatments service.TreatmentService
	logger     *slog.Logger
}

// NewPlotController creates a new plot controller
func NewPlotController(plots service.PlotService, treatments service.TreatmentService, logger *slog.Logger) *PlotController {
	return &PlotController{plots: plots, treatments: treatments, logger: logger}
}

// plotDetail decorates a plot with its display path and counts
type plotDetail struct {
	model.Plot
	HierarchyDisplay string `json:"hierarchy_display"`
	SubplotCount     int64  `json:"subplot_count"`
	TreatmentCount   int64  `json:"treatment_count"`
}

// Create handles POST /v1/plots
func (c *PlotController) Create(ctx *gin.Context) {
	var input service.PlotInput
	if !bindJSON(ctx, &input) {
		return
	}

	plot, err := c.plots.Create(input, middleware.CurrentUserID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("plot created",
		"plot_id", plot.ID,
		"name", plot.Name,
		"parent_plot", plot.ParentPlotID,
	)
	ctx.JSON(http.StatusCreated, plot)
}

// List handles GET /v1/plots
// Query parameters:
//   - parent (optional): filter by parent plot id
//   - parent_only (optional): "true" restricts to root plots
//   - search (optional): substring match on name, location, grass type
func (c *PlotController) List(ctx *gin.Context) {
	filter := repository.PlotFilter{
		ParentOnly: ctx.Query("parent_only") == "true",
		Search:     ctx.Query("search"),
	}
	if parent := ctx.Query("parent"); parent != "" {
		id, err := strconv.ParseUint(parent, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid parent",
				"message": "parent must be a valid unsigned integer",
			})
			return
		}
		parentID := uint(id)
		filter.ParentID = &parentID
	}

	plots, err := c.plots.List(filter)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, plots)
}

// Get handles GET /v1/plots/:id
func (c *PlotController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	plot, err := c.plots.Get(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	path, err := c.plots.DisplayPath(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	subplots, treatments, err := c.plots.Counts(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, plotDetail{
		Plot:             *plot,
		HierarchyDisplay: path,
		SubplotCount:     subplots,
		TreatmentCount:   treatments,
	})
}

// Update handles PATCH /v1/plots/:id
func (c *PlotController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var patch service.PlotPatch
	if !bindJSON(ctx, &patch) {
		return
	}

	plot, err := c.plots.Update(id, patch)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, plot)
}

// SetParent handles PUT /v1/plots/:id/parent
// Body: {"parent_plot": <id>} or {"parent_plot": null} to detach.
func (c *PlotController) SetParent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var body struct {
		ParentPlot *uint `json:"parent_plot"`
	}
	if !bindJSON(ctx, &body) {
		return
	}

	plot, err := c.plots.SetParent(id, body.ParentPlot)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("plot parent updated",
		"plot_id", plot.ID,
		"parent_plot", plot.ParentPlotID,
	)
	ctx.JSON(http.StatusOK, plot)
}

// Delete handles DELETE /v1/plots/:id and cascades to the whole subtree.
func (c *PlotController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.plots.Delete(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	c.logger.Info("plot deleted", "plot_id", id)
	ctx.Status(http.StatusNoContent)
}

// Subplots handles GET /v1/plots/:id/subplots
func (c *PlotController) Subplots(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	subplots, err := c.plots.Subplots(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	if subplots == nil {
		subplots = []model.Plot{}
	}
	ctx.JSON(http.StatusOK, subplots)
}

// Hierarchy handles GET /v1/plots/:id/hierarchy
func (c *PlotController) Hierarchy(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	hierarchy, err := c.plots.FullHierarchy(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, hierarchy)
}

// TreatmentHistory handles GET /v1/plots/:id/treatments
func (c *PlotController) TreatmentHistory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if _, err := c.plots.Get(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	treatments, err := c.treatments.List(repository.TreatmentFilter{PlotID: &id})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	if treatments == nil {
		treatments = []model.Treatment{}
	}
	ctx.JSON(http.StatusOK, treatments)
}
