package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-employee-directory/internal/interface/http"
	"github.com/oksasatya/go-employee-directory/internal/interface/middleware"
)

// UserModule wires signup and login.
// Public: POST /user/signup, POST /user/login
type UserModule struct {
	Handler *handlers.UserHandler
	// Limiter is nil when rate limiting is off.
	Limiter *redis.Client
}

func NewUserModule(h *handlers.UserHandler, limiter *redis.Client) *UserModule {
	return &UserModule{Handler: h, Limiter: limiter}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Limiter, 10, time.Minute, middleware.KeyByIP("signup"), nil) // 10 req/min per IP
	loginLimiter := middleware.RateLimit(m.Limiter, 10, time.Minute, middleware.KeyByIP("login"), nil)   // 10 req/min per IP

	g := rg.Group("/user")
	g.POST("/signup", signupLimiter, m.Handler.Signup)
	g.POST("/login", loginLimiter, m.Handler.Login)
}
