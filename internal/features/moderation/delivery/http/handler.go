package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/middleware"
	contentservice "soulscribe-backend/internal/features/content/service"
	"soulscribe-backend/internal/features/moderation/service"
	userservice "soulscribe-backend/internal/features/user/service"
)

type ModerationHandler struct {
	service  service.ModerationService
	contents contentservice.ContentService
	users    userservice.UserService
}

func NewModerationHandler(
	moderation service.ModerationService,
	contents contentservice.ContentService,
	users userservice.UserService,
) *ModerationHandler {
	return &ModerationHandler{service: moderation, contents: contents, users: users}
}

func (h *ModerationHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(h.users))
	{
		admin.GET("/content", h.listContent)
		admin.POST("/content/:id/approve", h.approve)
		admin.POST("/content/:id/reject", h.reject)
	}
}

// @Summary List content for moderation
// @Description Returns a page of all content, including pending and rejected items.
// @Tags admin
// @Produce json
// @Security BearerToken
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} models.ContentWithWallet "Moderation page"
// @Failure 403 {object} middleware.ErrorResponse "Admin access required"
// @Router /admin/content [get]
func (h *ModerationHandler) listContent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	page, err := h.contents.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// @Summary Approve content
// @Description Approves a pending submission and issues its soulbound token. Idempotent: re-approval never mints twice.
// @Tags admin
// @Produce json
// @Security BearerToken
// @Param id path int true "Content ID"
// @Success 200 {object} models.Content "Approved content"
// @Failure 404 {object} middleware.ErrorResponse "Content not found"
// @Failure 409 {object} middleware.ErrorResponse "Already rejected"
// @Failure 502 {object} middleware.ErrorResponse "Ledger issuance failed; content stays pending"
// @Router /admin/content/{id}/approve [post]
func (h *ModerationHandler) approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, apperrors.New(apperrors.ErrCodeBadRequest, "Invalid content ID format"))
		return
	}

	content, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

// @Summary Reject content
// @Description Rejects a pending submission. Previously issued tokens are never revoked.
// @Tags admin
// @Produce json
// @Security BearerToken
// @Param id path int true "Content ID"
// @Success 200 {object} models.Content "Rejected content"
// @Failure 404 {object} middleware.ErrorResponse "Content not found"
// @Failure 409 {object} middleware.ErrorResponse "Already approved"
// @Router /admin/content/{id}/reject [post]
func (h *ModerationHandler) reject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, apperrors.New(apperrors.ErrCodeBadRequest, "Invalid content ID format"))
		return
	}

	content, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}
