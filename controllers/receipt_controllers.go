package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type ReceiptController struct {
	sessions *services.SessionService
}

func NewReceiptController(sessions *services.SessionService) *ReceiptController {
	return &ReceiptController{sessions: sessions}
}

// GetReceipt -> consolidated receipt of a session
func (rc *ReceiptController) GetReceipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	receipt, err := rc.sessions.Receipt(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session receipt", receipt)
}

// DownloadReceipt -> the same receipt rendered as PDF
func (rc *ReceiptController) DownloadReceipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	receipt, err := rc.sessions.Receipt(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteReceiptPDF(&buf, receipt); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, fmt.Errorf("render receipt: %w", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=recibo-sesion-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
