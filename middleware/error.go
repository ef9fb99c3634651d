package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers from any panics and handles errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[%s] Panic recovered: %v\nStack trace:\n%s", RequestID(c), err, debug.Stack())

				c.JSON(http.StatusInternalServerError, gin.H{
					"error":     "An unexpected error occurred",
					"requestId": RequestID(c),
				})
				c.Abort()
			}
		}()

		c.Next()

		// Errors attached with c.Error that no handler turned into a response
		if len(c.Errors) > 0 && !c.Writer.Written() {
			log.Printf("[%s] Request failed: %v", RequestID(c), c.Errors.String())
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     c.Errors.Last().Error(),
				"requestId": RequestID(c),
			})
		}
	}
}
