package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the standard envelope for the read and calculator APIs.
// The checkout and webhook endpoints use their own wire shapes.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessJSON sends a 200 with the data wrapped in the envelope.
func SuccessJSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// ErrorJSON sends an error response with the given status and message.
func ErrorJSON(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}
