package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hatchlab/hatchery-backend/services"
	"github.com/hatchlab/hatchery-backend/utils"
)

// respondServiceError maps service-level failures onto the error
// taxonomy: validation -> 400, schedule conflict -> 409 with the
// structured report, not-found -> 404, anything else -> 500.
func respondServiceError(c *gin.Context, err error) {
	if ve, ok := services.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  false,
			"message": ve.Error(),
			"reasons": ve.Reasons,
		})
		return
	}
	if ce, ok := services.AsConflict(err); ok {
		c.JSON(http.StatusConflict, gin.H{
			"status":    false,
			"message":   ce.Error(),
			"conflicts": ce.Conflicts,
		})
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.ErrorLogger.Printf("internal error: %v", err)
	utils.RespondError(c, http.StatusInternalServerError, err)
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(n), true
}
