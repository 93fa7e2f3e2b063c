// Package middleware holds the gin middlewares shared across routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chitchat_server/pkg/errorx"
	"chitchat_server/pkg/util/jwt"
)

// ContextUserKey is where JWTAuth stores the authenticated user id.
const ContextUserKey = "user_id"

// JWTAuth validates the access token and stores the user id in the context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "authentication required",
			})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "malformed authorization header, expected Bearer token",
			})
			return
		}
		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "token expired or invalid",
			})
			return
		}
		if claims.Subject != "access_token" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeUnauthorized,
				"msg":  "access token required",
			})
			return
		}
		c.Set(ContextUserKey, claims.UserID)
		c.Next()
	}
}

// UserID reads the authenticated user id set by JWTAuth.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}
