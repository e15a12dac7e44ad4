package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobportal/internal/domain"
	"jobportal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const principalKey = "auth_principal"

// Principal is the authenticated caller, threaded through the request context
// instead of any ambient global.
type Principal struct {
	UserID    uuid.UUID
	Role      domain.Role
	SessionID string
}

// Auth validates the bearer token and checks the session has not been
// revoked, then stores the principal on the request context.
func Auth(jwtSecret string, sessions domain.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortJSON(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			abortJSON(c, http.StatusUnauthorized, "Bearer token required")
			return
		}

		claims, err := parseToken(strings.TrimSpace(tokenString), jwtSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortJSON(c, http.StatusUnauthorized, "Token expired")
				return
			}
			abortJSON(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		session, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "Session check failed")
			return
		}
		if session == nil {
			abortJSON(c, http.StatusUnauthorized, "Session has been revoked")
			return
		}

		c.Set(principalKey, Principal{
			UserID:    claims.UserID,
			Role:      claims.Role,
			SessionID: claims.SessionID,
		})
		c.Next()
	}
}

func parseToken(tokenString, jwtSecret string) (*service.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &service.Claims{}, func(token *jwt.Token) (interface{}, error) {
		method, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected HMAC algorithm: %v", method.Alg())
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*service.Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// RequireRole gates a route group to one or more roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		abortJSON(c, http.StatusForbidden, "Insufficient permissions")
	}
}

func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}

func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"timestamp": time.Now(),
		"status":    status,
		"message":   message,
	})
}
