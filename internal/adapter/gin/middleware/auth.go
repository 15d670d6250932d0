package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-account-service/pkg/logger"
	"user-account-service/pkg/token"
)

// BearerAuth validates the Authorization header against the token manager and
// rejects the request with 401 unless a valid bearer token is presented.
// The token subject is placed on the request context for downstream logging.
func BearerAuth(tokens *token.Manager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, value, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "missing or malformed authorization header",
			})
			return
		}

		claims, err := tokens.Validate(value)
		if err != nil {
			log.Info("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			return
		}

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
