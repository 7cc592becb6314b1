package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies an HS256 bearer token (header or auth_token
// cookie) and stores its subject and role on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			response.Abort(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			if secret == "" {
				return nil, fmt.Errorf("JWT_SECRET is not configured")
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			logger.Log.Debug("Token validation failed", "error", err, "request_id", requestID(c))
			response.Abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Invalid claims")
			return
		}
		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if sub == "" || role == "" {
			response.Abort(c, http.StatusUnauthorized, "Token is missing subject or role")
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserRole), role)
		c.Next()
	}
}

// RequireRole lets the request through when the caller holds one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "You are not allowed to perform this action")
	}
}

// RequireSelf admits the caller whose id equals the path parameter param.
// Admins pass unconditionally.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsSelfOrAdmin(c, c.Param(param)) {
			c.Next()
			return
		}
		response.Abort(c, http.StatusForbidden, "You can only access your own resources")
	}
}

// IsSelfOrAdmin reports whether the authenticated caller is ownerID or an
// admin.
func IsSelfOrAdmin(c *gin.Context, ownerID string) bool {
	if c.GetString(string(domain.KeyUserRole)) == domain.RoleAdmin {
		return true
	}
	userID := c.GetString(string(domain.KeyUserID))
	return userID != "" && userID == ownerID
}
