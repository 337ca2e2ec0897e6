package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-gin-event-registration/config"
	"go-gin-event-registration/internal/database"
	"go-gin-event-registration/internal/notifier"
	"go-gin-event-registration/internal/server"
	"go-gin-event-registration/internal/worker"
	"go-gin-event-registration/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.L.Sync()
	log := logger.WithComponent("main")

	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := database.RunMigrations(&cfg.Database); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.Queue.Driver == "redis" {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()
	}

	noticeQueue, err := server.NewNoticeQueue(ctx, &cfg.Queue, rdb)
	if err != nil {
		log.Fatal("Failed to initialize notice queue", zap.Error(err))
	}

	noticeWorker := worker.NewNoticeWorker(notifier.NewLogNotifier(nil), noticeQueue)
	if err := noticeWorker.Start(ctx); err != nil {
		log.Fatal("Failed to start notice worker", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewRouter(cfg, pool, noticeQueue),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr), zap.String("queue", cfg.Queue.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}
