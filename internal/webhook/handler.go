package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yuvraj13742/dodo-payments/internal/logger"
	"github.com/Yuvraj13742/dodo-payments/internal/settlement"
)

type Handler struct {
	settlements settlement.Service
}

func NewHandler(settlements settlement.Service) *Handler {
	return &Handler{settlements: settlements}
}

// HandleEvent godoc
// @Summary      Payment provider webhook
// @Description  Receives signed Dodo events and drives transaction settlement. Idempotent under redelivery.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {string}  string
// @Router       /webhooks/dodo [post]
func (h *Handler) HandleEvent(c *gin.Context) {
	rawBody, ok := RawBody(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing request body"})
		return
	}

	var ev settlement.Event
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		logger.Warn("malformed webhook payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
		return
	}

	if err := h.settlements.HandleEvent(c.Request.Context(), ev); err != nil {
		logger.Error("webhook processing failed", "type", ev.Type, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook processing error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook received"})
}
