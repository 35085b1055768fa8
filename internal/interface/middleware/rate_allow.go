package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

func isPrivateIP(c *gin.Context) bool {
	parsed := net.ParseIP(ipFromCtx(c))
	if parsed == nil {
		return false
	}
	// 10.0.0.0/8, 172.16/12, 192.168/16, loopback
	return parsed.IsLoopback() || parsed.IsPrivate()
}

// AllowPrivateIP lets internal callers bypass the rate limiter.
func AllowPrivateIP() AllowFunc {
	return isPrivateIP
}
