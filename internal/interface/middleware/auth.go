package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-employee-directory/pkg/response"
)

const CtxUserIDKey = "userID"

// TokenVerifier resolves a session token to a user id; satisfied by *helpers.JWTManager.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth requires an "Authorization: Bearer <token>" header and sets userID in
// the Gin context. A missing or malformed header and a rejected token are
// both 401, with distinct messages.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		uid, err := verifier.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
