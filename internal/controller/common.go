package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"turftrack/internal/model"
)

// parseIDParam parses a numeric path parameter. On failure it writes a 400
// response and returns false.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid " + name,
			"message": name + " must be a valid unsigned integer",
		})
		return 0, false
	}
	return uint(id), true
}

// respondError maps domain errors to HTTP responses: circular-hierarchy and
// validation failures to 400, missing records to 404, everything else to a
// logged 500.
func respondError(ctx *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrCircularHierarchy):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Circular hierarchy",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": err.Error(),
		})
	default:
		logger.Error("request failed",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "The request could not be processed",
		})
	}
}

// bindJSON decodes the request body. On failure it writes a 400 response and
// returns false.
func bindJSON(ctx *gin.Context, dest interface{}) bool {
	if err := ctx.ShouldBindJSON(dest); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return false
	}
	return true
}
