package gift

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yuvraj13742/dodo-payments/internal/api"
	"github.com/Yuvraj13742/dodo-payments/internal/apperr"
	"github.com/Yuvraj13742/dodo-payments/internal/auth"
	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SendGift godoc
// @Summary      Send a gift
// @Description  Debits the gift cost from the sender and credits the creator net of commission.
// @Tags         gifts
// @Accept       json
// @Produce      json
// @Param        request  body      SendRequest  true  "Gift and receiver"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Security     BearerAuth
// @Router       /gifts/send [post]
func (h *Handler) SendGift(c *gin.Context) {
	senderID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	result, err := h.service.SendGift(c.Request.Context(), senderID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGiftNotFound):
			api.Fail(c, apperr.NotFound("gift not found"))
		case errors.Is(err, ErrSenderNotFound):
			api.Fail(c, apperr.NotFound("sender not found"))
		case errors.Is(err, ErrReceiverNotFound):
			api.Fail(c, apperr.NotFound("receiver not found"))
		case errors.Is(err, wallet.ErrInsufficientFunds):
			api.Fail(c, apperr.InsufficientFunds("insufficient coin balance"))
		default:
			api.Fail(c, apperr.Internal("gift transfer failed", err))
		}
		return
	}

	api.OK(c, http.StatusOK, "Gift sent successfully.", result)
}

// ListGifts godoc
// @Summary      Gift catalog
// @Tags         gifts
// @Produce      json
// @Success      200  {object}  api.Response
// @Router       /gifts [get]
func (h *Handler) ListGifts(c *gin.Context) {
	gifts, err := h.service.ListGifts(c.Request.Context())
	if err != nil {
		api.Fail(c, apperr.Internal("failed to load gifts", err))
		return
	}

	api.OK(c, http.StatusOK, "", gifts)
}
