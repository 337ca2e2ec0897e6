package handler

import (
	"errors"
	"net/http"

	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/internal/service"
	apperrors "go-gin-event-registration/pkg/app_errors"
	"go-gin-event-registration/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	service     service.UserService
	requireAuth gin.HandlerFunc
}

func NewUserHandler(service service.UserService, requireAuth gin.HandlerFunc) *UserHandler {
	return &UserHandler{service: service, requireAuth: requireAuth}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("users", h.SignUp)
		router.POST("auth", h.Login)
		router.GET("auth", h.requireAuth, h.Me)
	}
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	token, err := h.service.SignUp(c, req)
	if err != nil {
		h.handleError(c, err, "SignUp")
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{Token: token})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	token, err := h.service.Login(c, req)
	if err != nil {
		h.handleError(c, err, "Login")
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{Token: token})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.service.GetByID(c, userID)
	if err != nil {
		h.handleError(c, err, "Me")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrUserExists):
		log.Warn("User already exists")
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case errors.Is(err, apperrors.ErrPasswordTooLong):
		log.Warn("Password too long")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at most 72 bytes"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
