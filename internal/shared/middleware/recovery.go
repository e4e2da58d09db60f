package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bugtracker-backend/internal/shared/response"
)

// Recovery bắt panic, trả 500 theo envelope chuẩn thay vì đóng connection
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Interface("panic", rec).
					Msg("Panic recovered")

				response.ErrorWithDetails(c, http.StatusInternalServerError, "Internal Server Error", response.ErrorDetail{
					Cause: fmt.Errorf("panic: %v", rec),
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}
