package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingModule struct{ path string }

func (m pingModule) Register(rg *gin.RouterGroup) {
	rg.GET(m.path, func(c *gin.Context) { c.String(http.StatusOK, c.GetString("mw")) })
}

func TestRegistry_MountsUnderPrefixAndRoot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	reg := NewRegistry(engine, "/api/v1")
	reg.Use(func(c *gin.Context) { c.Set("mw", "api"); c.Next() })
	reg.Add(pingModule{path: "/ping"})
	reg.AddRoot(pingModule{path: "/health"})
	reg.RegisterAll()

	tests := []struct {
		path string
		code int
		body string
	}{
		{path: "/api/v1/ping", code: http.StatusOK, body: "api"},
		{path: "/health", code: http.StatusOK, body: ""},
		{path: "/ping", code: http.StatusNotFound},
		{path: "/api/v1/health", code: http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.code, w.Code, tt.path)
		if tt.code == http.StatusOK {
			assert.Equal(t, tt.body, w.Body.String(), tt.path)
		}
	}
}

func TestNewRegistry_DefaultPrefix(t *testing.T) {
	reg := NewRegistry(gin.New(), "")
	assert.Equal(t, "/api", reg.API.BasePath())
}
