package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-employee-directory/internal/interface/http"
)

// PublicModule serves uploaded pictures and the health probe at the root.
type PublicModule struct {
	Assets *handlers.AssetHandler
	Health *handlers.HealthHandler
}

func NewPublicModule(assets *handlers.AssetHandler, health *handlers.HealthHandler) *PublicModule {
	return &PublicModule{Assets: assets, Health: health}
}

func (m *PublicModule) Register(rg *gin.RouterGroup) {
	rg.GET("/uploads/:filename", m.Assets.Serve)
	rg.HEAD("/uploads/:filename", m.Assets.Serve)
	rg.GET("/health", m.Health.Health)
}
