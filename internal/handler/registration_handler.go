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

const alreadyRegisteredMessage = "You are already registered"

type RegistrationHandler struct {
	service     service.RegistrationService
	requireAuth gin.HandlerFunc
}

func NewRegistrationHandler(service service.RegistrationService, requireAuth gin.HandlerFunc) *RegistrationHandler {
	return &RegistrationHandler{service: service, requireAuth: requireAuth}
}

func (h *RegistrationHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("events/status", h.GetStatus)
		router.POST("events/:id", h.Register)
		router.GET("events/:id/participants", h.requireAuth, h.ListParticipants)
		router.PUT("events/:id/participants", h.requireAuth, h.UpdateStatus)
	}
}

// Register 公開報名，成功時以純文字回傳報名碼
func (h *RegistrationHandler) Register(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	var req model.RegisterParticipantRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	participant, err := h.service.Register(c, eventID, req)
	if err != nil {
		h.handleError(c, err, "Register")
		return
	}
	c.String(http.StatusOK, participant.ShortID)
}

func (h *RegistrationHandler) GetStatus(c *gin.Context) {
	var req model.RegistrationStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	status, err := h.service.GetStatus(c, req.ShortID)
	if err != nil {
		h.handleError(c, err, "GetStatus")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *RegistrationHandler) ListParticipants(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	participants, err := h.service.ListParticipants(c, eventID, userID)
	if err != nil {
		h.handleError(c, err, "ListParticipants")
		return
	}
	c.JSON(http.StatusOK, participants)
}

func (h *RegistrationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	var req model.UpdateParticipantStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.service.UpdateStatus(c, eventID, userID, req); err != nil {
		h.handleError(c, err, "UpdateStatus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Status updated"})
}

func (h *RegistrationHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		log.Info("Participant already registered")
		c.String(http.StatusOK, alreadyRegisteredMessage)
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrParticipantNotFound):
		log.Warn("Registration code not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Wrong registration code"})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("User not authorized")
		c.JSON(http.StatusForbidden, gin.H{"error": "User not authorized"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
