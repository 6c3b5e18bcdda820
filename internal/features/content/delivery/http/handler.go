package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/middleware"
	"soulscribe-backend/internal/features/content/models/dto"
	"soulscribe-backend/internal/features/content/service"
	moderationservice "soulscribe-backend/internal/features/moderation/service"
)

type ContentHandler struct {
	service    service.ContentService
	moderation moderationservice.ModerationService
}

func NewContentHandler(service service.ContentService, moderation moderationservice.ModerationService) *ContentHandler {
	return &ContentHandler{service: service, moderation: moderation}
}

func (h *ContentHandler) RegisterRoutes(router *gin.RouterGroup) {
	content := router.Group("/content")
	{
		content.GET("/categories", h.getCategories)
		content.GET("/feed", h.getFeed)
		content.GET("/:id", h.getByID)

		authed := content.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.POST("", h.submit)
			authed.GET("/user", h.getMyContent)
		}
	}
}

// @Summary Submit content
// @Description Validates and stores a new submission, scores it and leaves it pending admin review.
// @Tags content
// @Accept json
// @Produce json
// @Security BearerToken
// @Param request body dto.ContentCreate true "Submission"
// @Success 201 {object} models.Content "Stored content with scorecard"
// @Failure 400 {object} middleware.ErrorResponse "Validation failed"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid token"
// @Router /content [post]
func (h *ContentHandler) submit(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	var input dto.ContentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, apperrors.New(apperrors.ErrCodeBadRequest, "Malformed submission payload"))
		return
	}

	content, err := h.moderation.Submit(c.Request.Context(), claims.UserID, &input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, content)
}

// @Summary List categories
// @Description Returns the closed set of valid category tags.
// @Tags content
// @Produce json
// @Success 200 {array} string "Category tags"
// @Router /content/categories [get]
func (h *ContentHandler) getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Categories())
}

// @Summary Approved content feed
// @Description Returns a page of approved content joined with the owner's wallet.
// @Tags content
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} models.ContentWithWallet "Feed page"
// @Router /content/feed [get]
func (h *ContentHandler) getFeed(c *gin.Context) {
	limit, offset := pageParams(c)

	feed, err := h.service.Feed(c.Request.Context(), limit, offset)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// @Summary List own submissions
// @Description Returns every submission of the authenticated caller, newest first.
// @Tags content
// @Produce json
// @Security BearerToken
// @Success 200 {array} models.Content "Submissions"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid token"
// @Router /content/user [get]
func (h *ContentHandler) getMyContent(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	contents, err := h.service.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contents)
}

// @Summary Get content by ID
// @Tags content
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} models.Content "Content"
// @Failure 400 {object} middleware.ErrorResponse "Invalid ID"
// @Failure 404 {object} middleware.ErrorResponse "Content not found"
// @Router /content/{id} [get]
func (h *ContentHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, apperrors.New(apperrors.ErrCodeBadRequest, "Invalid content ID format"))
		return
	}

	content, err := h.service.GetContent(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, content)
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
