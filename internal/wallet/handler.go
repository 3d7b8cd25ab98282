package wallet

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yuvraj13742/dodo-payments/internal/api"
	"github.com/Yuvraj13742/dodo-payments/internal/apperr"
	"github.com/Yuvraj13742/dodo-payments/internal/auth"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListTransactions godoc
// @Summary      Transaction history
// @Description  Returns the authenticated account's ledger entries, newest first.
// @Tags         transactions
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 50)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  api.Response
// @Failure      401     {object}  api.Response
// @Security     BearerAuth
// @Router       /transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.repo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		api.Fail(c, apperr.Internal("failed to load transactions", err))
		return
	}

	api.OK(c, http.StatusOK, "", txs)
}
