package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlotteesavage/ev-scheduling-dp/internal/api/models"
)

// ErrorHandler recovers panics from handlers and converts them into the
// same JSON error shape handlers return for ordinary failures.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		if err, ok := recovered.(string); ok {
			msg = err
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorBody{Code: "INTERNAL_ERROR", Message: msg},
		})
		c.Abort()
	})
}
