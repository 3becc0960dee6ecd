package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type HealthController struct {
	uow *services.UnitOfWork
}

func NewHealthController(uow *services.UnitOfWork) *HealthController {
	return &HealthController{uow: uow}
}

// Check -> probes the database with a trivial query
func (hc *HealthController) Check(c *gin.Context) {
	if err := hc.uow.Ping(c.Request.Context()); err != nil {
		utils.ErrorLogger.WithError(err).Error("health check failed")
		c.JSON(http.StatusInternalServerError, utils.JSONResponse{
			Status:  false,
			Message: "Database unreachable",
			Data:    gin.H{"details": err.Error()},
		})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Database connection OK", nil)
}
