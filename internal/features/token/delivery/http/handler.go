package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/middleware"
	"soulscribe-backend/internal/features/token/service"
	userservice "soulscribe-backend/internal/features/user/service"
	"soulscribe-backend/internal/platform/ledger"
)

type TokenHandler struct {
	service service.TokenService
	users   userservice.UserService
	ledger  ledger.Client
}

func NewTokenHandler(service service.TokenService, users userservice.UserService, ledgerClient ledger.Client) *TokenHandler {
	return &TokenHandler{service: service, users: users, ledger: ledgerClient}
}

func (h *TokenHandler) RegisterRoutes(router *gin.RouterGroup) {
	tokens := router.Group("/tokens")
	tokens.Use(middleware.RequireAuth())
	{
		tokens.GET("/user", h.getMyTokens)
		tokens.GET("/ledger", h.getLedgerTokens)
	}
}

// @Summary List own soulbound tokens
// @Description Returns every token issued to the authenticated caller.
// @Tags tokens
// @Produce json
// @Security BearerToken
// @Success 200 {array} models.SoulboundToken "Tokens"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid token"
// @Router /tokens/user [get]
func (h *TokenHandler) getMyTokens(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	tokens, err := h.service.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// @Summary List tokens on the ledger
// @Description Proxies the ledger's view of the caller's tokens for reconciliation against local records.
// @Tags tokens
// @Produce json
// @Security BearerToken
// @Success 200 {array} ledger.Token "Ledger tokens"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid token"
// @Failure 502 {object} middleware.ErrorResponse "Ledger unreachable"
// @Router /tokens/ledger [get]
func (h *TokenHandler) getLedgerTokens(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	user, err := h.users.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	tokens, err := h.ledger.ListTokens(c.Request.Context(), user.WalletAddress)
	if err != nil {
		middleware.AbortWithError(c, apperrors.NewLedgerError("list tokens", err))
		return
	}

	c.JSON(http.StatusOK, tokens)
}
