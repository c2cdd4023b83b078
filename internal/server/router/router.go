package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/server/handlers"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Schedules *handlers.ScheduleHandler
	Inventory *handlers.InventoryHandler
	Alarms    *handlers.AlarmHandler
	Stream    *handlers.StreamHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tanks := r.Group("/tanks")
	tanks.GET("", h.Inventory.ListTanks)
	tanks.POST("", h.Inventory.CreateTank)
	tanks.GET("/:id", h.Inventory.GetTank)
	tanks.PUT("/:id", h.Inventory.UpdateTank)
	tanks.PATCH("/:id/readings", h.Inventory.RecordReading)
	tanks.DELETE("/:id", h.Inventory.DeleteTank)

	styles := r.Group("/brew-styles")
	styles.GET("", h.Inventory.ListBrewStyles)
	styles.POST("", h.Inventory.CreateBrewStyle)
	styles.GET("/:id", h.Inventory.GetBrewStyle)
	styles.PUT("/:id", h.Inventory.UpdateBrewStyle)
	styles.DELETE("/:id", h.Inventory.DeleteBrewStyle)

	schedules := r.Group("/production-schedules")
	schedules.GET("", h.Schedules.List)
	schedules.POST("", h.Schedules.Create)
	schedules.POST("/check-conflict", h.Schedules.CheckConflict)
	schedules.GET("/:id", h.Schedules.Get)
	schedules.PUT("/:id", h.Schedules.Update)
	schedules.DELETE("/:id", h.Schedules.Delete)

	alarms := r.Group("/alarms")
	alarms.GET("", h.Alarms.List)
	alarms.POST("", h.Alarms.Create)
	alarms.GET("/:id", h.Alarms.Get)
	alarms.PUT("/:id", h.Alarms.Update)
	alarms.DELETE("/:id", h.Alarms.Delete)

	r.GET("/system-status", h.Inventory.GetSystemStatus)
	r.PUT("/system-status", h.Inventory.UpdateSystemStatus)

	r.GET("/events", h.Stream.Stream)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
