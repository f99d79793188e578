package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"wearable-server/internal/auth"
	"wearable-server/internal/handler"
	"wearable-server/internal/hub"
	"wearable-server/internal/middleware"
	"wearable-server/internal/storage"
)

type Deps struct {
	DB             storage.Database
	TokenConfig    auth.TokenConfig
	Logger         *zap.Logger
	WSRequireToken bool
}

func NewRouter(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	broadcast := hub.New()

	credentialLimiter := middleware.NewRateLimiter(10, time.Minute)
	authHandler := &handler.AuthHandler{DB: deps.DB, TokenConfig: deps.TokenConfig, Logger: logger}
	r.POST("/signup", middleware.RateLimit(credentialLimiter), authHandler.Signup)
	r.POST("/login", middleware.RateLimit(credentialLimiter), authHandler.Login)

	telemetryHandler := &handler.TelemetryHandler{DB: deps.DB, Hub: broadcast, Logger: logger}
	r.GET("/data/last10", telemetryHandler.Last10)

	protected := r.Group("/")
	protected.Use(middleware.RequireAuth(deps.TokenConfig))
	protected.GET("/profile", authHandler.Profile)
	protected.GET("/data", telemetryHandler.Latest)
	protected.POST("/data", telemetryHandler.Create)
	protected.GET("/data/user", telemetryHandler.UserData)

	reportsHandler := &handler.ReportsHandler{DB: deps.DB, Logger: logger}
	protected.POST("/runreport", reportsHandler.CreateRun)
	protected.GET("/runreports", reportsHandler.ListRuns)
	protected.DELETE("/runreports/:id", reportsHandler.DeleteRun)
	protected.POST("/walkreport", reportsHandler.CreateWalk)
	protected.GET("/walkreports", reportsHandler.ListWalks)
	protected.DELETE("/walkreports/:id", reportsHandler.DeleteWalk)
	protected.POST("/workoutreport", reportsHandler.CreateWorkout)
	protected.GET("/workoutHistory", reportsHandler.ListWorkouts)
	protected.DELETE("/workoutHistory/:id", reportsHandler.DeleteWorkout)

	wsHandler := &handler.WebSocketHandler{
		Hub:          broadcast,
		TokenConfig:  deps.TokenConfig,
		RequireToken: deps.WSRequireToken,
		Logger:       logger,
	}
	r.GET("/ws", wsHandler.Serve)

	return r
}
