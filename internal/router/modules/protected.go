package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/dream-journal-api/internal/interface/middleware"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
)

// Guard bundles what every protected group needs.
type Guard struct {
	JWT   helpers.TokenIssuer
	Redis *redis.Client
}

// Group returns rg.Group(path) behind the auth middleware with a soft per-user limit.
func (g Guard) Group(rg *gin.RouterGroup, path string) *gin.RouterGroup {
	grp := rg.Group(path)
	grp.Use(middleware.Auth(g.JWT))
	grp.Use(middleware.RateLimit(g.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	return grp
}
