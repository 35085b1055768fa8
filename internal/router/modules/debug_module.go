package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-employee-directory/internal/interface/middleware"
)

type DebugModule struct {
	Limiter *redis.Client
}

func NewDebugModule(limiter *redis.Client) *DebugModule { return &DebugModule{Limiter: limiter} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar counters, rate-limited per IP; internal scrapers bypass the limit
	rl := middleware.RateLimit(m.Limiter, 120, time.Minute, middleware.KeyByIP("debug"), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
