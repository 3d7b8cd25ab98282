package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yuvraj13742/dodo-payments/internal/api"
	"github.com/Yuvraj13742/dodo-payments/internal/apperr"
	"github.com/Yuvraj13742/dodo-payments/internal/settlement"
)

type ConfirmRequest struct {
	TransactionID     int    `json:"transaction_id" binding:"required"`
	DodoTransactionID string `json:"dodo_transaction_id" binding:"required"`
	Status            string `json:"status" binding:"required,oneof=completed failed cancelled"`
}

type Handler struct {
	settlements settlement.Service
}

func NewHandler(settlements settlement.Service) *Handler {
	return &Handler{settlements: settlements}
}

// Confirm godoc
// @Summary      Confirm a payment from the client return flow
// @Description  Advisory settlement path used when the client returns from checkout before the webhook lands. The webhook remains authoritative; a transaction already settled is reported as a conflict.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      ConfirmRequest  true  "Transaction and provider reference"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      409      {object}  api.Response
// @Security     BearerAuth
// @Router       /payments/confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	txn, err := h.settlements.Confirm(c.Request.Context(), req.TransactionID, req.DodoTransactionID, req.Status)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, http.StatusOK, "Payment status recorded.", txn)
}
