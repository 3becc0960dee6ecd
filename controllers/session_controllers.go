package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/daie-pos/kds"
	"github.com/yeremiapane/daie-pos/services"
	"github.com/yeremiapane/daie-pos/utils"
)

type SessionController struct {
	sessions *services.SessionService
	hub      *kds.Hub
}

func NewSessionController(sessions *services.SessionService, hub *kds.Hub) *SessionController {
	return &SessionController{sessions: sessions, hub: hub}
}

func (sc *SessionController) GetAllSessions(c *gin.Context) {
	sessions, err := sc.sessions.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of sessions", sessions)
}

func (sc *SessionController) GetSession(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	session, err := sc.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session details", session)
}

// CreateSession -> open an empty session. The body is optional.
func (sc *SessionController) CreateSession(c *gin.Context) {
	var req struct {
		Status string `json:"estado" binding:"omitempty,sessionstatus"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	session, err := sc.sessions.Create(c.Request.Context(), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.hub.Broadcast(kds.EventSessionUpdate, session)
	utils.RespondJSON(c, http.StatusCreated, "Session created successfully", session)
}

// UpdateSession -> status-only update; closed closes the session
func (sc *SessionController) UpdateSession(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"estado" binding:"required,sessionstatus"`
	}
	if !bindJSON(c, &req) {
		return
	}
	session, err := sc.sessions.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.hub.Broadcast(kds.EventSessionUpdate, session)
	utils.RespondJSON(c, http.StatusOK, "Session updated", session)
}

// DeleteSession -> remove a session and its links, keeping the orders
func (sc *SessionController) DeleteSession(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := sc.sessions.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	sc.hub.Broadcast(kds.EventSessionUpdate, gin.H{"id": id, "deleted": true})
	c.Status(http.StatusNoContent)
}

// AttachOrder -> link an order to an open session
func (sc *SessionController) AttachOrder(c *gin.Context) {
	var req struct {
		SessionID uint `json:"sesion_id" binding:"required"`
		OrderID   uint `json:"orden_id" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	link, err := sc.sessions.Attach(c.Request.Context(), req.SessionID, req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sc.hub.Broadcast(kds.EventSessionUpdate, link)
	utils.RespondJSON(c, http.StatusCreated, "Order added to session", link)
}

// GetSessionOrders -> ids of the orders linked to a session
func (sc *SessionController) GetSessionOrders(c *gin.Context) {
	id, ok := parseID(c, "sesion_id")
	if !ok {
		return
	}
	ids, err := sc.sessions.OrdersOf(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders of session", ids)
}

// DetachOrder -> drop the link only
func (sc *SessionController) DetachOrder(c *gin.Context) {
	sessionID, ok := parseID(c, "sesion_id")
	if !ok {
		return
	}
	orderID, ok := parseID(c, "orden_id")
	if !ok {
		return
	}
	if err := sc.sessions.Detach(c.Request.Context(), sessionID, orderID); err != nil {
		respondServiceError(c, err)
		return
	}
	sc.hub.Broadcast(kds.EventSessionUpdate, gin.H{"sesion_id": sessionID, "orden_id": orderID, "detached": true})
	c.Status(http.StatusNoContent)
}
