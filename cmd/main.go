package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Siddhant-kochhar/goatfit/config"
	"github.com/Siddhant-kochhar/goatfit/controllers"
	"github.com/Siddhant-kochhar/goatfit/routes"
	"github.com/Siddhant-kochhar/goatfit/services"
	"github.com/Siddhant-kochhar/goatfit/utils"

	"go.uber.org/zap"
)

func main() {
	config.InitDB()
	config.InitRedis()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	mailer := utils.NewMailer()
	hub := services.NewRealtimeHub()
	cache := services.NewVitalsCache(config.RDB)
	fit := services.NewGoogleFitService()
	gemini := services.NewGeminiService()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		logger.Warn("push service unavailable", zap.Error(err))
	}

	dispatcher := services.NewAlertDispatcher(config.DB, hub, push, mailer, logger)

	interval := time.Minute
	if v := os.Getenv("MONITOR_INTERVAL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			interval = time.Duration(n) * time.Second
		}
	}
	monitor := services.NewMonitorService(config.DB, fit, gemini, dispatcher, cache, hub, logger, interval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go monitor.Run(ctx)

	r := routes.SetupRouter(routes.Controllers{
		OAuth:    controllers.NewOAuthController(fit),
		Vitals:   controllers.NewVitalsController(services.NewVitalsService(config.DB, cache), monitor),
		Contacts: controllers.NewContactController(mailer),
		Realtime: controllers.NewRealtimeController(hub),
		Devices:  controllers.NewDeviceController(push),
		Dev:      controllers.NewDevController(monitor),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
