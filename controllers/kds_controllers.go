package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/kds"
)

type KDSController struct {
	hub *kds.Hub
}

func NewKDSController(hub *kds.Hub) *KDSController {
	return &KDSController{hub: hub}
}

// KDSHandler -> websocket endpoint for floor displays
func (kc *KDSController) KDSHandler(c *gin.Context) {
	kc.hub.Serve(c.Writer, c.Request)
}
