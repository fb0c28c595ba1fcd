package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"turftrack/internal/model"
	"turftrack/internal/service"
)

// LookupController handles the Location and GrassType master lists
type LookupController struct {
	lookups service.LookupService
	logger  *slog.Logger
}

// NewLookupController creates a new lookup controller
func NewLookupController(lookups service.LookupService, logger *slog.Logger) *LookupController {
	return &LookupController{lookups: lookups, logger: logger}
}

// CreateLocation handles POST /v1/locations
func (c *LookupController) CreateLocation(ctx *gin.Context) {
	var input service.LookupInput
	if !bindJSON(ctx, &input) {
		return
	}
	loc, err := c.lookups.CreateLocation(input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, loc)
}

// ListLocations handles GET /v1/locations
func (c *LookupController) ListLocations(ctx *gin.Context) {
	locs, err := c.lookups.ListLocations(ctx.Query("search"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	if locs == nil {
		locs = []model.Location{}
	}
	ctx.JSON(http.StatusOK, locs)
}

// GetLocation handles GET /v1/locations/:id
func (c *LookupController) GetLocation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	loc, err := c.lookups.GetLocation(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, loc)
}

// UpdateLocation handles PATCH /v1/locations/:id
func (c *LookupController) UpdateLocation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input service.LookupInput
	if !bindJSON(ctx, &input) {
		return
	}
	loc, err := c.lookups.UpdateLocation(id, input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, loc)
}

// DeleteLocation handles DELETE /v1/locations/:id
func (c *LookupController) DeleteLocation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.lookups.DeleteLocation(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateGrassType handles POST /v1/grass-types
func (c *LookupController) CreateGrassType(ctx *gin.Context) {
	var input service.LookupInput
	if !bindJSON(ctx, &input) {
		return
	}
	gt, err := c.lookups.CreateGrassType(input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, gt)
}

// ListGrassTypes handles GET /v1/grass-types
func (c *LookupController) ListGrassTypes(ctx *gin.Context) {
	gts, err := c.lookups.ListGrassTypes(ctx.Query("search"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	if gts == nil {
		gts = []model.GrassType{}
	}
	ctx.JSON(http.StatusOK, gts)
}

// GetGrassType handles GET /v1/grass-types/:id
func (c *LookupController) GetGrassType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	gt, err := c.lookups.GetGrassType(id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gt)
}

// UpdateGrassType handles PATCH /v1/grass-types/:id
func (c *LookupController) UpdateGrassType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input service.LookupInput
	if !bindJSON(ctx, &input) {
		return
	}
	gt, err := c.lookups.UpdateGrassType(id, input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, gt)
}

// DeleteGrassType handles DELETE /v1/grass-types/:id
func (c *LookupController) DeleteGrassType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.lookups.DeleteGrassType(id); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
