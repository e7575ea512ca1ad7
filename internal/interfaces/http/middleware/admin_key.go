package middleware

import (
	"github.com/gin-gonic/gin"
	domainerrors "gaswatch.backend/internal/domain/errors"
	"gaswatch.backend/internal/interfaces/http/response"
	"gaswatch.backend/pkg/crypto"
)

const apiKeyHeader = "X-API-Key"

// AdminKeyMiddleware gates write endpoints behind the admin API key. The
// key is verified against its bcrypt hash on every request; an empty hash
// disables the surface.
func AdminKeyMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			response.Error(c, domainerrors.Forbidden("admin surface is disabled"))
			c.Abort()
			return
		}

		key := c.GetHeader(apiKeyHeader)
		if key == "" || !crypto.CheckAPIKey(key, keyHash) {
			response.Error(c, domainerrors.Unauthorized("invalid api key"))
			c.Abort()
			return
		}

		c.Next()
	}
}
