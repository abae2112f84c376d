// README: Auth middleware; verifies Firebase ID tokens and exposes the caller to handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyage/internal/infra"
	"voyage/internal/logger"
)

// AnonymousCaller owns every run when auth is disabled.
const AnonymousCaller = "anonymous"

const (
	ctxCallerUID   = "caller_uid"
	ctxCallerEmail = "caller_email"
)

// Auth requires a Bearer token verified by verifier. A nil verifier disables
// auth and every request runs as AnonymousCaller.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	if verifier == nil {
		return func(c *gin.Context) {
			c.Set(ctxCallerUID, AnonymousCaller)
			c.Next()
		}
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			logger.Log.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxCallerUID, token.UID)
		c.Set(ctxCallerEmail, token.Email)
		c.Next()
	}
}

func CallerUID(c *gin.Context) string {
	return c.GetString(ctxCallerUID)
}

func CallerEmail(c *gin.Context) string {
	return c.GetString(ctxCallerEmail)
}
