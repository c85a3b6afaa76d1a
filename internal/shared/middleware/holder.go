package middleware

import "github.com/gin-gonic/gin"

// HolderID derives the opaque holder token seat leases are keyed by. A
// logged-in user holds as "user:<id>", a guest as "guest:<device>:<session>".
// The bool is false when the request carries no usable identity.
func HolderID(c *gin.Context) (string, bool) {
	if userID, exists := c.Get(CtxUserID); exists {
		if id, ok := userID.(string); ok && id != "" {
			return "user:" + id, true
		}
	}

	deviceID, hasDevice := c.Get(CtxDeviceID)
	sessionID, hasSession := c.Get(CtxSessionID)
	if hasDevice && hasSession {
		device, dok := deviceID.(string)
		session, sok := sessionID.(string)
		if dok && sok && device != "" && session != "" {
			return "guest:" + device + ":" + session, true
		}
	}

	return "", false
}
