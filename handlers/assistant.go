package handlers

import (
	"net/http"

	"glowdesk/models"
	"glowdesk/services/assistant"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// AssistantHandler exposes the inbound-message webhooks the channel gateways
// call for each customer turn.
type AssistantHandler struct {
	svc assistant.Service
}

func NewAssistantHandler(svc assistant.Service) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

type inboundMessage struct {
	ConversationID string `json:"conversation_id"`
	From           string `json:"from" binding:"required"`
	Text           string `json:"text" binding:"required"`
}

// HandleInbound returns a gin handler bound to one channel.
func (h *AssistantHandler) HandleInbound(channel string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input inboundMessage
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		resp, err := h.svc.ProcessMessage(c.Request.Context(), models.AssistantRequest{
			ConversationID: input.ConversationID,
			Channel:        channel,
			From:           input.From,
			Text:           input.Text,
		})
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to process message", err.Error())
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
