package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"shuttle_booking_backend/internal/line"
	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/internal/services"
	"shuttle_booking_backend/pkg/utils"
)

// WebhookHandler receives LINE webhook deliveries.
type WebhookHandler struct {
	lineClient   line.Client
	conversation services.ConversationService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(lc line.Client, cs services.ConversationService) *WebhookHandler {
	return &WebhookHandler{lineClient: lc, conversation: cs}
}

// Callback verifies the delivery, replies to each event and acknowledges with 200.
// Event failures are logged and never change the acknowledgement.
func (h *WebhookHandler) Callback(c *gin.Context) {
	events, err := h.lineClient.ParseRequest(c.Request)
	if err != nil {
		if errors.Is(err, line.ErrInvalidSignature) {
			utils.LogWarn("Invalid webhook signature", map[string]interface{}{"client_ip": c.ClientIP()})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid signature", ""))
			return
		}
		utils.LogError(err, "Callback: Failed to parse webhook")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid webhook body", err.Error()))
		return
	}

	for _, ev := range events {
		h.handleEvent(c.Request.Context(), ev)
	}
	c.String(http.StatusOK, "OK")
}

// handleEvent isolates one event so a panic does not affect the rest of the delivery.
func (h *WebhookHandler) handleEvent(ctx context.Context, ev models.InboundEvent) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogError(fmt.Errorf("panic: %v", r), "Event handler panicked", map[string]interface{}{
				"event_kind": ev.Kind,
				"stack":      string(debug.Stack()),
			})
		}
	}()

	utils.LogDebug("Handling event", map[string]interface{}{"event_kind": ev.Kind, "payload": ev.Payload})
	msgs := h.conversation.HandleEvent(ctx, ev)
	if err := h.lineClient.Reply(ctx, ev.ReplyToken, msgs); err != nil {
		utils.LogError(err, "Failed to send reply", map[string]interface{}{"event_kind": ev.Kind})
	}
}
