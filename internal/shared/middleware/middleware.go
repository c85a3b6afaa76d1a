package middleware

import (
	"net/http"
	"strings"

	"sabhyata/internal/shared/config"
	"sabhyata/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by the identity middleware.
const (
	CtxUserID    = "user_id"
	CtxUserRole  = "user_role"
	CtxDeviceID  = "device_id"
	CtxSessionID = "session_id"
)

// Identity resolves who is asking for seats. A valid bearer token wins;
// otherwise the X-Device-ID/X-Session-ID header pair identifies a guest.
// Routes that mutate seat state additionally go through RequireHolder.
func Identity(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
					if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, jwt.ErrSignatureInvalid
					}
					return []byte(cfg.JWT.Secret), nil
				})
				if err == nil && token.Valid {
					if claims, ok := token.Claims.(jwt.MapClaims); ok {
						if userID, ok := claims["user_id"].(string); ok {
							c.Set(CtxUserID, userID)
						}
						if role, ok := claims["role"].(string); ok {
							c.Set(CtxUserRole, role)
						}
					}
				}
			}
		}

		if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
			c.Set(CtxDeviceID, deviceID)
		}
		if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
			c.Set(CtxSessionID, sessionID)
		}

		c.Next()
	}
}

// RequireHolder rejects requests that carry neither a user identity nor a
// guest device/session pair. Seat holds need a holder token to lease against.
func RequireHolder() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, hasUser := c.Get(CtxUserID)
		_, hasDevice := c.Get(CtxDeviceID)
		_, hasSession := c.Get(CtxSessionID)

		if !hasUser && !(hasDevice && hasSession) {
			response.RespondJSON(c, "error", http.StatusUnauthorized,
				"identity required: provide a bearer token or X-Device-ID and X-Session-ID headers", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin gates template editing and privileged hold/release routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(CtxUserRole)
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authentication required", nil, nil)
			c.Abort()
			return
		}

		if role, ok := userRole.(string); !ok || role != "ADMIN" {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
