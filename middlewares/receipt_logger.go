package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/utils"
)

func ReceiptLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		utils.InfoLogger.WithField("session_id", id).Info("generating session receipt")

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.WithField("session_id", id).Info("session receipt generated")
		} else {
			utils.ErrorLogger.WithField("session_id", id).WithField("status", c.Writer.Status()).Error("session receipt failed")
		}
	}
}
