package subscription

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSubscriptionNotFound):
		api.Fail(c, apperr.NotFound("subscription not found"))
	case errors.Is(err, ErrCreatorNotFound):
		api.Fail(c, apperr.NotFound("creator not found or is not a creator"))
	case errors.Is(err, ErrSubscriberNotFound):
		api.Fail(c, apperr.NotFound("subscriber not found"))
	case errors.Is(err, ErrInvalidPrice):
		api.Fail(c, apperr.Validation("price must be positive"))
	case errors.Is(err, ErrAlreadyTerminated):
		api.Fail(c, apperr.Conflict("subscription is already cancelled or expired"))
	default:
		api.Fail(c, err)
	}
}

// Create godoc
// @Summary      Subscribe to a creator
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Plan details"
// @Success      200      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Security     BearerAuth
// @Router       /subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	subscriberID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	result, err := h.service.Create(c.Request.Context(), subscriberID, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	api.OK(c, http.StatusOK, "Subscription checkout session created successfully.", result)
}

// Cancel godoc
// @Summary      Cancel a subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id   path      int  true  "Subscription id"
// @Success      200  {object}  api.Response
// @Failure      404  {object}  api.Response
// @Failure      409  {object}  api.Response
// @Security     BearerAuth
// @Router       /subscriptions/{id}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid subscription id"))
		return
	}

	sub, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	api.OK(c, http.StatusOK, "Subscription cancelled successfully.", sub)
}

// Get godoc
// @Summary      Subscription details
// @Tags         subscriptions
// @Produce      json
// @Param        id   path      int  true  "Subscription id"
// @Success      200  {object}  api.Response
// @Failure      404  {object}  api.Response
// @Security     BearerAuth
// @Router       /subscriptions/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid subscription id"))
		return
	}

	sub, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	api.OK(c, http.StatusOK, "", sub)
}

// Update godoc
// @Summary      Update plan, price or auto-renew
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id       path      int            true  "Subscription id"
// @Param        request  body      UpdateRequest  true  "Fields to change"
// @Success      200      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Security     BearerAuth
// @Router       /subscriptions/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid subscription id"))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	sub, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	api.OK(c, http.StatusOK, "Subscription updated successfully.", sub)
}

// ListByCreator godoc
// @Summary      List a creator's subscriptions
// @Tags         subscriptions
// @Produce      json
// @Param        creatorID  path      int  true  "Creator id"
// @Success      200        {object}  api.Response
// @Security     BearerAuth
// @Router       /creators/{creatorID}/subscriptions [get]
func (h *Handler) ListByCreator(c *gin.Context) {
	creatorID, err := strconv.Atoi(c.Param("creatorID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid creator id"))
		return
	}

	subs, err := h.service.ListByCreator(c.Request.Context(), creatorID)
	if err != nil {
		api.Fail(c, apperr.Internal("failed to load subscriptions", err))
		return
	}

	api.OK(c, http.StatusOK, "", subs)
}
