package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"property-alerts/internal/app"
	"property-alerts/internal/core/config"
	"property-alerts/internal/core/logger"
	"property-alerts/internal/core/server"
	"property-alerts/internal/transport/http/handler"
	"property-alerts/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.Build(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.Log.JSON,
		Rotate:      logger.FileRotate(cfg.Log.Rotate),
	})
	defer cleanup()

	// 存储、通知、事件日志（失败直接 Fatal）
	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("app init", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("app close", zap.Error(err))
		}
	}()

	// 路由（用户端）
	r := router.NewAPIEngine(log,
		handler.NewListingHandler(a.ListingSvc, a.SearchSvc),
		handler.NewAlertHandler(a.AlertSvc),
	)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	if el, err := logger.ToStdLogger(log, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = el
	}

	baseURL := server.HumanURL(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	log.Info("listing api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listing api start FAILED", zap.Error(err))
		}
	}()
	log.Info("listing api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("listing api stopped gracefully")
}
