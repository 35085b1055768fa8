package router

import "github.com/gin-gonic/gin"

// Module mounts one feature's routes. The registry hands it either the
// prefixed API group or the engine root.
type Module interface {
	Register(rg *gin.RouterGroup)
}
