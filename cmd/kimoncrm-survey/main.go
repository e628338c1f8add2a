package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"kimoncrm-survey/internal/catalog"
	"kimoncrm-survey/internal/config"
	"kimoncrm-survey/internal/database"
	httpapi "kimoncrm-survey/internal/http"
	"kimoncrm-survey/internal/logger"
	"kimoncrm-survey/internal/repository"
	"kimoncrm-survey/internal/service"
	"kimoncrm-survey/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "kimoncrm-survey")
	if err != nil {
		log, _ = zap.NewProduction()
	}
	defer log.Sync()

	// Redis：快照读缓存（可选；连不上时只丢缓存，不影响正确性）
	var cache *store.SnapshotCache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err == nil {
		cache = store.NewSnapshotCache(store.NewRedisKV(redisClient), 10*time.Minute)
	} else {
		log.Warn("Redis unavailable, snapshot cache disabled", zap.Error(err))
	}

	// Postgres：权威快照存储；不可用时回退内存 repo 支持联测
	var surveysRepo repository.SurveysRepository = repository.NewMemorySurveysRepo()
	if cfg.DBEnabled {
		if db, err := database.NewPostgresDB(&cfg.Database); err == nil {
			surveysRepo = repository.NewPostgresSurveysRepository(db)
			log.Info("DB enabled for kimoncrm-survey")
			defer database.Close(db)
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repo", zap.Error(err))
		}
	}

	catalogClient := catalog.NewClient(
		cfg.Catalog.BaseURL,
		time.Duration(cfg.Catalog.TimeoutMS)*time.Millisecond,
		log,
	)

	surveys := service.NewSurveyService(
		surveysRepo,
		cache,
		catalogClient,
		time.Duration(cfg.Save.DebounceMS)*time.Millisecond,
		log,
	)

	router := httpapi.NewRouter(log)
	router.RegisterSurveyRoutes(httpapi.NewSurveyHandler(surveys, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server exited", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// 先落盘挂起的防抖写，再关 HTTP
	if err := surveys.Flush(shutdownCtx); err != nil {
		log.Error("Failed to flush pending snapshots", zap.Error(err))
	}
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop HTTP server", zap.Error(err))
	}
}
