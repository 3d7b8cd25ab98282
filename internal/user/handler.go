package user

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

// Register godoc
// @Summary      Register an account
// @Description  Creates a user or creator account and returns token pair.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      409      {object}  api.Response
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	u, accessToken, refreshToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			api.Fail(c, apperr.Conflict("email already registered"))
			return
		}
		api.Fail(c, apperr.Internal("failed to register user", err))
		return
	}

	api.OK(c, http.StatusCreated, "User registered successfully.", AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  api.Response
// @Failure      401      {object}  api.Response
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	u, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, apperr.AuthFailure("invalid credentials"))
		return
	}

	api.OK(c, http.StatusOK, "Logged in successfully.", AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Refresh godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh token"
// @Success      200      {object}  api.Response
// @Failure      401      {object}  api.Response
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(api.BindMessage(err)))
		return
	}

	accessToken, u, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		api.Fail(c, apperr.AuthFailure("invalid refresh token"))
		return
	}

	api.OK(c, http.StatusOK, "", AuthResponse{User: u, AccessToken: accessToken})
}

// GetMe godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  api.Response
// @Failure      401  {object}  api.Response
// @Security     BearerAuth
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, apperr.AuthFailure("user not authenticated"))
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			api.Fail(c, apperr.NotFound("user not found"))
			return
		}
		api.Fail(c, apperr.Internal("failed to load user", err))
		return
	}

	api.OK(c, http.StatusOK, "", u)
}
