package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/middleware"
	"soulscribe-backend/internal/features/auth/models"
	"soulscribe-backend/internal/features/auth/service"
)

type AuthHandler struct {
	service *service.Service
}

func NewAuthHandler(service *service.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/state", h.generateState)
		auth.POST("/login", h.login)
		auth.GET("/status", h.status)
	}
}

type stateRequest struct {
	Wallet string `json:"wallet" binding:"required" example:"alice.scribe"`
}

// @Summary Request a login challenge
// @Description Issues a short-lived state string the wallet must sign to prove ownership.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body stateRequest true "Wallet identifier"
// @Success 200 {object} models.StateResponse "Challenge to sign"
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Router /auth/state [post]
func (h *AuthHandler) generateState(c *gin.Context) {
	var req stateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("wallet", "required"))
		return
	}

	state, err := h.service.GenerateState(c.Request.Context(), req.Wallet)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StateResponse{State: state.State})
}

// @Summary Log in with a wallet proof
// @Description Verifies a signed wallet-ownership proof, creates the account on first login and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.WalletProofRequest true "Signed proof"
// @Success 200 {object} models.LoginResponse "Bearer token"
// @Failure 400 {object} middleware.ErrorResponse "Malformed proof"
// @Failure 401 {object} middleware.ErrorResponse "Proof rejected"
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req models.WalletProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.New(apperrors.ErrCodeBadRequest, "Malformed proof payload"))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Authentication status
// @Description Reports whether the caller presented a valid bearer token.
// @Tags auth
// @Produce json
// @Security BearerToken
// @Success 200 {object} models.StatusResponse "Status"
// @Router /auth/status [get]
func (h *AuthHandler) status(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusOK, models.StatusResponse{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Authenticated: true, Wallet: claims.Wallet})
}
