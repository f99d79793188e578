package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"wearable-server/internal/auth"
)

const identityContextKey = "identity"

// IdentityFromContext returns the claims injected by RequireAuth.
func IdentityFromContext(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok && claims != nil
}

// RequireAuth gates every protected route. A missing token is 401, a token
// that fails verification (bad signature or expired) is 403. Failures abort
// the chain; no downstream handler runs.
func RequireAuth(cfg auth.TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: No token provided"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: Token missing"})
			return
		}

		claims, err := auth.VerifyToken(parts[1], cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": "Forbidden: Invalid or expired token"})
			return
		}

		c.Set(identityContextKey, claims)
		c.Next()
	}
}
