package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-employee-directory/internal/interface/http"
	"github.com/oksasatya/go-employee-directory/internal/interface/middleware"
)

// EmployeeModule registers the bearer-protected employee routes under /emp/employees.
type EmployeeModule struct {
	Handler  *handlers.EmployeeHandler
	Verifier middleware.TokenVerifier
	Limiter  *redis.Client
}

func NewEmployeeModule(h *handlers.EmployeeHandler, verifier middleware.TokenVerifier, limiter *redis.Client) *EmployeeModule {
	return &EmployeeModule{Handler: h, Verifier: verifier, Limiter: limiter}
}

func (m *EmployeeModule) Register(rg *gin.RouterGroup) {
	// the IP limiter sits in front of Auth so rejected tokens are counted too
	g := rg.Group("/emp/employees")
	g.Use(
		middleware.RateLimit(m.Limiter, 300, time.Minute, middleware.KeyByIP("emp"), nil),
		middleware.Auth(m.Verifier),
		middleware.RateLimit(m.Limiter, 120, time.Minute, middleware.KeyByUserID("emp"), nil),
	)
	{
		g.GET("", m.Handler.List)
		g.GET("/search", m.Handler.Search)
		g.GET("/lookup", m.Handler.Lookup)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
