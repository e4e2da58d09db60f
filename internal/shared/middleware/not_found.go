package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"bugtracker-backend/internal/shared/response"
)

// NotFound handler cho engine.NoRoute
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.NotFound(c, fmt.Sprintf("Route not found - %s", c.Request.URL.RequestURI()))
	}
}
