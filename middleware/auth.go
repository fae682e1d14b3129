package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"carenow/utils"
)

const revokedTokenPrefix = "revokedToken:"

// PartnerAuth validates the partner JWT and scopes the request to the token's
// subject: the :id path parameter must match the authenticated partner.
// Revoked tokens are tracked by hash in the auth cache.
func PartnerAuth(tokens *utils.AuthTokens, authCache *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		partnerID, err := tokens.ExtractID(tokenString)
		if err != nil || partnerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := context.Background()
		revokedKey := revokedTokenPrefix + utils.HashToken(tokenString)
		if _, err := authCache.Get(ctx, revokedKey).Result(); err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		} else if err != redis.Nil {
			logger.Error("Error checking token revocation", zap.Error(err))
		}

		if pathID := c.Param("id"); pathID != "" && pathID != partnerID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not grant access to this partner"})
			return
		}

		c.Set("partnerID", partnerID)
		c.Next()
	}
}
