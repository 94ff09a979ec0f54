package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/cache"
	"github.com/OCHOLLA20/75hard-fitness-tracker/config"
	"github.com/OCHOLLA20/75hard-fitness-tracker/middlewares"
	"github.com/OCHOLLA20/75hard-fitness-tracker/routes"
	"github.com/OCHOLLA20/75hard-fitness-tracker/services"
	"github.com/OCHOLLA20/75hard-fitness-tracker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	utils.InitLogger()
	defer utils.Logger.Sync()
	utils.InitMetrics()

	utils.Logger.Info("starting_application")

	config.InitDB()
	utils.InitS3()
	utils.InitSES()

	// Redis is optional: without it the dashboard cache and rate limiter
	// are simply disabled.
	var counter middlewares.RequestCounter
	useCache := false
	if err := cache.InitRedis(utils.Logger); err != nil {
		utils.Logger.Warn("redis_unavailable_continuing_without_cache", zap.Error(err))
	} else {
		counter = cache.NewCounter(cache.Client)
		useCache = true
		defer cache.Close()
	}

	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		utils.Logger.Warn("push_service_unavailable", zap.Error(err))
		push = nil
	}

	rek, err := services.NewRekognitionService()
	if err != nil {
		utils.Logger.Warn("rekognition_unavailable", zap.Error(err))
		rek = nil
	}

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(routes.Deps{
		DB:          config.DB,
		Counter:     counter,
		Hub:         hub,
		Push:        push,
		Rekognition: rek,
		UseCache:    useCache,
	})

	startServer(r)
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	utils.Logger.Info("starting_http_server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Logger.Info("shutting_down_server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal("server_forced_shutdown", zap.Error(err))
	}

	utils.Logger.Info("server_stopped")
}
