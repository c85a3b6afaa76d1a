package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondSeatConflict reports the seats that blocked a hold/book call so the
// caller knows exactly what to deselect.
func RespondSeatConflict(c *gin.Context, message string, seats []string) {
	RespondJSON(c, "error", http.StatusConflict, message, nil, map[string]interface{}{
		"conflicting_seats": seats,
	})
}
