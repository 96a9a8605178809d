package http

import (
	"time"

	"github.com/njb1/what2do/internal/http/handlers"
	"github.com/njb1/what2do/internal/http/middleware"
	"github.com/njb1/what2do/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// Options tune the routes that are not part of the task API itself.
type Options struct {
	Version       string
	Redis         *redis.Client // nil selects the in-memory rate limiter
	APIRateLimit  int           // requests per window; <= 0 disables limiting
	APIRateWindow time.Duration
}

// NewRouter builds the gin engine with the global middleware chain and all routes.
func NewRouter(tasks *service.TaskService, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORS())
	RegisterRoutes(r, tasks, opts)
	return r
}

func RegisterRoutes(r *gin.Engine, tasks *service.TaskService, opts Options) {
	h := handlers.NewHandler(tasks)
	healthHandler := handlers.NewHealthHandler(tasks, opts.Version)

	// Probes and metrics (no rate limiting)
	r.GET("/", h.Index)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/tasks")
	api.Use(middleware.RateLimit(opts.Redis, opts.APIRateLimit, opts.APIRateWindow))
	{
		api.GET("", h.ListTasks)
		api.POST("", h.CreateTask)
		api.PUT("/:id", h.UpdateTask)
		api.DELETE("/:id", h.DeleteTask)
	}
}
