package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/dream-journal-api/internal/interface/http"
	"github.com/oksasatya/dream-journal-api/internal/interface/middleware"
)

// UserModule wires the credential endpoints.
// Public: POST /users/register, POST /users/login
// Protected: POST /users/logout, GET /users/me
type UserModule struct {
	Handler       *handlers.UserHandler
	Guard         Guard
	LoginLimit    int
	RegisterLimit int
	// Allow bypasses the public limits, e.g. for private networks in development.
	Allow middleware.AllowFunc
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Guard.Redis, m.RegisterLimit, time.Minute, middleware.KeyByIPAndPath(), m.Allow)
	loginLimiter := middleware.RateLimit(m.Guard.Redis, m.LoginLimit, time.Minute, middleware.KeyByIPAndPath(), m.Allow)

	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	auth := m.Guard.Group(rg, "/users")
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
