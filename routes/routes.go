package routes

import (
	"net/http"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/controllers"
	"github.com/OCHOLLA20/75hard-fitness-tracker/middlewares"
	"github.com/OCHOLLA20/75hard-fitness-tracker/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps carries everything the router needs. Counter, Push and Rekognition
// may be nil; the affected features degrade gracefully.
type Deps struct {
	DB          *gorm.DB
	Counter     middlewares.RequestCounter
	Hub         *services.RealtimeHub
	Push        *services.PushService
	Rekognition *services.RekognitionService
	UseCache    bool
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middlewares.RateLimit(deps.Counter, 100, time.Minute))

	authSvc := services.NewAuthService(deps.DB)
	userSvc := services.NewUserService(deps.DB)
	progressSvc := services.NewProgressService(deps.DB, deps.Hub, deps.Push)
	photoSvc := services.NewPhotoService(deps.DB, deps.Rekognition)
	workoutSvc := services.NewWorkoutService(deps.DB)
	challengeSvc := services.NewChallengeService(deps.DB)
	statsSvc := services.NewStatsService(deps.DB, deps.UseCache)

	authCtl := controllers.NewAuthController(authSvc)
	userCtl := controllers.NewUserController(userSvc)
	progressCtl := controllers.NewProgressController(progressSvc, photoSvc, statsSvc)
	workoutCtl := controllers.NewWorkoutController(workoutSvc, statsSvc)
	challengeCtl := controllers.NewChallengeController(challengeSvc, statsSvc)
	statsCtl := controllers.NewStatsController(statsSvc)
	deviceCtl := controllers.NewDeviceController(deps.Push)
	realtimeCtl := controllers.NewRealtimeController(deps.Hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
	}

	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware(deps.DB))
	{
		user := authed.Group("/user")
		{
			user.GET("/profile", userCtl.GetProfile)
			user.PUT("/profile", userCtl.UpdateProfile)
			user.POST("/change-password", userCtl.ChangePassword)
			user.DELETE("/account", userCtl.DeleteAccount)
		}

		challenge := authed.Group("/challenge")
		{
			challenge.POST("/start", challengeCtl.Start)
			challenge.POST("/reset", challengeCtl.Reset)
			challenge.GET("/status", challengeCtl.Status)
		}

		progress := authed.Group("/progress")
		{
			progress.GET("", progressCtl.List)
			progress.GET("/:day_number", progressCtl.GetByDay)
			progress.POST("/:day_number", progressCtl.CheckIn)
			progress.POST("/:day_number/photo", progressCtl.UploadPhoto)
		}

		workouts := authed.Group("/workouts")
		{
			workouts.GET("", workoutCtl.List)
			workouts.POST("", workoutCtl.Create)
			workouts.GET("/day/:day_number", workoutCtl.ByDay)
			workouts.GET("/:id", workoutCtl.Get)
			workouts.PUT("/:id", workoutCtl.Update)
			workouts.DELETE("/:id", workoutCtl.Delete)
		}

		stats := authed.Group("/stats")
		{
			stats.GET("/dashboard", statsCtl.Dashboard)
			stats.GET("/detailed", statsCtl.Detailed)
			stats.GET("/weekly", statsCtl.Weekly)
			stats.GET("/monthly", statsCtl.Monthly)
			stats.GET("/weekdays", statsCtl.Weekdays)
			stats.GET("/workouts", statsCtl.Workouts)
			stats.GET("/water", statsCtl.Water)
			stats.GET("/comparative", statsCtl.Comparative)
			stats.GET("/overview", statsCtl.Overview)
		}

		authed.POST("/devices/register", deviceCtl.Register)
		authed.GET("/ws/progress", realtimeCtl.ProgressWS)
	}

	return r
}
