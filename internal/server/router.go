package server

import (
	"net/http"

	"go-gin-event-registration/config"
	"go-gin-event-registration/internal/auth"
	"go-gin-event-registration/internal/handler"
	"go-gin-event-registration/internal/middleware"
	"go-gin-event-registration/internal/queue"
	"go-gin-event-registration/internal/repository"
	"go-gin-event-registration/internal/service"
	"go-gin-event-registration/pkg/shortid"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRouter 組裝 repository / service / handler 並註冊所有路由
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, noticeQueue queue.NoticeQueue) *gin.Engine {
	eventRepo := repository.NewEventRepository(pool)
	participantRepo := repository.NewParticipantRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	requireAuth := middleware.Auth(tokens)

	eventService := service.NewEventService(eventRepo)
	registrationService := service.NewRegistrationService(eventRepo, participantRepo, noticeQueue, shortid.New(cfg.Server.ShortIDLength))
	userService := service.NewUserService(userRepo, tokens)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	handler.NewEventHandler(eventService, requireAuth).RegisterRoutes(router)
	handler.NewRegistrationHandler(registrationService, requireAuth).RegisterRoutes(router)
	handler.NewUserHandler(userService, requireAuth).RegisterRoutes(router)

	return router
}
