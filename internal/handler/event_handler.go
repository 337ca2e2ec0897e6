package handler

import (
	"errors"
	"net/http"
	"time"

	"go-gin-event-registration/internal/model"
	"go-gin-event-registration/internal/service"
	apperrors "go-gin-event-registration/pkg/app_errors"
	"go-gin-event-registration/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service     service.EventService
	requireAuth gin.HandlerFunc
}

func NewEventHandler(service service.EventService, requireAuth gin.HandlerFunc) *EventHandler {
	return &EventHandler{service: service, requireAuth: requireAuth}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/m", h.requireAuth, h.ListMine)
		router.GET("events/:id", h.GetByEventID)
		router.POST("events", h.requireAuth, h.Create)
		router.PUT("events/:id", h.requireAuth, h.UpdateByEventID)
		router.DELETE("events/:id", h.requireAuth, h.DeleteByEventID)
	}
}

// EventRequest 建立與更新活動共用；更新時整筆取代
type EventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Type        string    `json:"type" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Website     *string   `json:"website"`
	Image       *string   `json:"image"`
	DateStart   time.Time `json:"dateStart" binding:"required"`
	DateEnd     time.Time `json:"dateEnd" binding:"required,gtfield=DateStart"`
}

func (r *EventRequest) toEvent(userID int) *model.Event {
	return &model.Event{
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Location:    r.Location,
		Website:     r.Website,
		Image:       r.Image,
		DateStart:   r.DateStart,
		DateEnd:     r.DateEnd,
	}
}

func (r *EventRequest) toUpdateParams() model.UpdateEventParams {
	return model.UpdateEventParams{
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Location:    r.Location,
		Website:     r.Website,
		Image:       r.Image,
		DateStart:   r.DateStart,
		DateEnd:     r.DateEnd,
	}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	events, err := h.service.ListByOwner(c, userID)
	if err != nil {
		h.handleError(c, err, "ListMine")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		h.handleError(c, err, "GetByEventID")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.Create(c, req.toEvent(userID))
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *EventHandler) UpdateByEventID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	var req EventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	updated, err := h.service.UpdateByEventID(c, eventID, userID, req.toUpdateParams())
	if err != nil {
		h.handleError(c, err, "UpdateByEventID")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) DeleteByEventID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteByEventID(c, eventID, userID); err != nil {
		h.handleError(c, err, "DeleteByEventID")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Event removed"})
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("User not authorized")
		c.JSON(http.StatusForbidden, gin.H{"error": "User not authorized"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		log.Warn("Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token, authorization denied"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
