package handlers

import (
	"errors"
	"net/http"

	"github.com/brendimo/spinwheel-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// SessionHandler handles wheel session HTTP requests
type SessionHandler struct {
	sessionService services.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// SubmitRequest is the entry form payload
type SubmitRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// PhoneRequest carries just a phone number
type PhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// Submit handles POST /sessions — the eligibility check
func (h *SessionHandler) Submit(c *gin.Context) {
	var request SubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.sessionService.Submit(c.Request.Context(), request.Name, request.Phone)
	if err != nil {
		var vErr *services.ValidationError
		var eErr *services.EligibilityError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
		case errors.Is(err, services.ErrSpinInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &eErr):
			// server-supplied denial message, shown verbatim
			c.JSON(http.StatusForbidden, gin.H{"allowed": false, "error": eErr.Message})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": services.MsgTransportError})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"allowed": true, "session": sess})
}

// Spin handles POST /sessions/spin
func (h *SessionHandler) Spin(c *gin.Context) {
	var request PhoneRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.sessionService.Spin(c.Request.Context(), request.Phone)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSession):
			c.JSON(http.StatusBadRequest, gin.H{"error": services.MsgNoSession})
		case errors.Is(err, services.ErrSpinInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrWheelDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			// log-phase transport failure: the outcome was still chosen and
			// must be surfaced, but the wheel stays disabled
			if result != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": services.MsgLogError, "result": result})
			} else {
				c.JSON(http.StatusBadGateway, gin.H{"error": services.MsgLogError})
			}
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Claim handles POST /sessions/claim — "I'll take it" on the last spin
func (h *SessionHandler) Claim(c *gin.Context) {
	var request PhoneRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessionService.Claim(c.Request.Context(), request.Phone); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// History handles GET /history/:phone
func (h *SessionHandler) History(c *gin.Context) {
	records, err := h.sessionService.History(c.Request.Context(), c.Param("phone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"spins": records})
}
