package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/dream-journal-api/internal/interface/http"
	"github.com/oksasatya/dream-journal-api/internal/interface/middleware"
)

type HealthModule struct{}

func (HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", handlers.Health)
}

// MetricsModule exposes the Prometheus registry, rate-limited per IP.
type MetricsModule struct {
	Gatherer prometheus.Gatherer
	Redis    *redis.Client
}

func (m *MetricsModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/metrics", rl, gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
}
