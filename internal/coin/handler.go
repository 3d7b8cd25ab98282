package coin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yuvraj13742/dodo-payments/internal/api"
	"github.com/Yuvraj13742/dodo-payments/internal/apperr"
	"github.com/Yuvraj13742/dodo-payments/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Purchase godoc
// @Summary      Buy a coin package
// @Description  Creates a hosted checkout session; coins are credited by the payment webhook, never by the client redirect.
// @Tags         coins
// @Accept       json
// @Produce      json
// @Param        request  body      PurchaseRequest  true  "Package to buy"
// @Success      200      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Failure      502      {object}  api.Response
// @Security     BearerAuth
// @Router       /coins/purchase [post]
func (h *Handler) Purchase(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	result, err := h.service.Purchase(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPackageNotFound):
			api.Fail(c, apperr.NotFound("coin package not found"))
		case errors.Is(err, ErrUserNotFound):
			api.Fail(c, apperr.NotFound("user not found"))
		default:
			api.Fail(c, err)
		}
		return
	}

	api.OK(c, http.StatusOK, "Checkout session created successfully.", result)
}

// Balance godoc
// @Summary      Wallet balance
// @Tags         coins
// @Produce      json
// @Success      200  {object}  api.Response
// @Failure      404  {object}  api.Response
// @Security     BearerAuth
// @Router       /coins/balance [get]
func (h *Handler) Balance(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			api.Fail(c, apperr.NotFound("user not found"))
			return
		}
		api.Fail(c, apperr.Internal("failed to load balance", err))
		return
	}

	api.OK(c, http.StatusOK, "", BalanceResponse{WalletBalance: balance})
}

// ListPackages godoc
// @Summary      Coin package catalog
// @Tags         coins
// @Produce      json
// @Success      200  {object}  api.Response
// @Router       /coins/packages [get]
func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.service.ListPackages(c.Request.Context())
	if err != nil {
		api.Fail(c, apperr.Internal("failed to load coin packages", err))
		return
	}

	api.OK(c, http.StatusOK, "", packages)
}
