package api

import (
	"errors"
	"net/http"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/usecase"
	"ecomovex-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the turn pipeline over HTTP
type ChatHandler struct {
	orchestrator *usecase.ChatOrchestrator
	logger       logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(orchestrator *usecase.ChatOrchestrator, logger logger.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// HandleChat processes one conversational turn
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req entity.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.orchestrator.HandleTurn(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidUtterance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "utterance is empty or too long"})
	case errors.Is(err, entity.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no active plan for this user"})
	case errors.Is(err, entity.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "the turn did not complete in time"})
	default:
		h.logger.Error("Chat turn failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
