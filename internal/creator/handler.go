package creator

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
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Withdraw godoc
// @Summary      Request a payout
// @Description  Creates a provider payout for the net amount and debits the gross amount from the wallet as a pending transaction.
// @Tags         creators
// @Accept       json
// @Produce      json
// @Param        request  body      WithdrawRequest  true  "Payout amount and bank details"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      403      {object}  api.Response
// @Security     BearerAuth
// @Router       /creator/withdraw [post]
func (h *Handler) Withdraw(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}
	if !req.Amount.IsPositive() {
		api.Fail(c, apperr.Validation("amount must be positive"))
		return
	}

	result, err := h.service.RequestPayout(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCreatorNotFound):
			api.Fail(c, apperr.NotFound("creator not found"))
		case errors.Is(err, ErrNotACreator):
			api.Fail(c, apperr.Validation("only creator accounts can request payouts"))
		case errors.Is(err, ErrBelowMinimumPayout):
			api.Fail(c, apperr.Validation("amount is below the minimum payout"))
		case errors.Is(err, wallet.ErrInsufficientFunds):
			api.Fail(c, apperr.InsufficientFunds("insufficient wallet balance"))
		default:
			api.Fail(c, err)
		}
		return
	}

	api.OK(c, http.StatusOK, "Withdrawal request submitted.", result)
}

// Earnings godoc
// @Summary      Earnings summary
// @Description  Returns the creator's wallet balance, lifetime earnings and lifetime payouts.
// @Tags         creators
// @Produce      json
// @Success      200  {object}  api.Response
// @Security     BearerAuth
// @Router       /creator/earnings [get]
func (h *Handler) Earnings(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	summary, err := h.service.Earnings(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, apperr.Internal("failed to load earnings", err))
		return
	}

	api.OK(c, http.StatusOK, "", summary)
}

// UpdateKYC godoc
// @Summary      Update KYC details
// @Tags         creators
// @Accept       json
// @Produce      json
// @Param        request  body      KYCRequest  true  "KYC status and bank details"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Security     BearerAuth
// @Router       /creator/kyc [put]
func (h *Handler) UpdateKYC(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	var req KYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	u, err := h.service.UpdateKYC(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCreatorNotFound):
			api.Fail(c, apperr.NotFound("creator not found"))
		case errors.Is(err, ErrNotACreator):
			api.Fail(c, apperr.Validation("only creator accounts carry KYC details"))
		default:
			api.Fail(c, apperr.Internal("failed to update KYC", err))
		}
		return
	}

	api.OK(c, http.StatusOK, "KYC details updated.", u)
}

// List godoc
// @Summary      List creators
// @Tags         creators
// @Produce      json
// @Success      200  {object}  api.Response
// @Router       /creators [get]
func (h *Handler) List(c *gin.Context) {
	creators, err := h.service.List(c.Request.Context())
	if err != nil {
		api.Fail(c, apperr.Internal("failed to list creators", err))
		return
	}

	api.OK(c, http.StatusOK, "", creators)
}
