package handlers

import (
	"errors"
	"net/http"

	"wayfarer/models"
	"wayfarer/services/planner"
	"wayfarer/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the conversational itinerary engine over HTTP.
type AssistantHandler struct {
	Service planner.PlannerService
}

func NewAssistantHandler(svc planner.PlannerService) *AssistantHandler {
	return &AssistantHandler{Service: svc}
}

// TurnHandler processes one conversation turn. The body carries the full
// session state; the response carries everything the caller needs to build
// the next turn.
func (h *AssistantHandler) TurnHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.AssistantTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid assistant turn request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	resp, err := h.Service.ProcessTurn(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, req.SessionID, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SessionSnapshotHandler returns the last recorded turn for a session.
func (h *AssistantHandler) SessionSnapshotHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	snapshot, err := h.Service.SessionSnapshot(c.Request.Context(), sessionID)
	if err != nil {
		utils.GetLogger().Error("Failed to load session snapshot",
			zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session snapshot"})
		return
	}
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No snapshot for session"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// writeServiceError maps planner errors onto HTTP statuses. The upstream
// provider error never reaches the caller verbatim.
func (h *AssistantHandler) writeServiceError(c *gin.Context, sessionID string, err error) {
	logger := utils.GetLogger()

	var configErr *planner.ConfigError
	var validationErr *planner.ValidationError
	var upstreamErr *planner.UpstreamError

	switch {
	case errors.As(err, &configErr):
		logger.Warn("Assistant unavailable", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not available"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &upstreamErr):
		logger.Error("Assistant upstream failure", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant request failed, please retry"})
	default:
		logger.Error("Assistant turn failed", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
