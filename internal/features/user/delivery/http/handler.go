package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "soulscribe-backend/internal/common/errors"
	"soulscribe-backend/internal/common/middleware"
	"soulscribe-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/me", h.getMe)
		users.GET("/:id", h.getUser)
	}
}

// @Summary Get current user
// @Description Returns the profile of the authenticated caller.
// @Tags users
// @Produce json
// @Security BearerToken
// @Success 200 {object} models.UserResponse "User data"
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	claims, _ := middleware.GetClaims(c)

	user, err := h.service.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Get user by ID
// @Description Returns a user's public profile.
// @Tags users
// @Produce json
// @Security BearerToken
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse "User data"
// @Failure 400 {object} middleware.ErrorResponse "Invalid ID"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, apperrors.New(apperrors.ErrCodeBadRequest, "Invalid user ID format"))
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
