package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, fn func(c *gin.Context)) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSuccessList_ZeroCountIsPresent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	code, body := render(t, func(c *gin.Context) {
		SuccessList(c, 0, []string{})
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestErrorWithDetails(t *testing.T) {
	cause := errors.New("pq: connection refused")

	t.Run("release mode hides cause", func(t *testing.T) {
		gin.SetMode(gin.ReleaseMode)
		defer gin.SetMode(gin.TestMode)

		code, body := render(t, func(c *gin.Context) {
			ErrorWithDetails(c, http.StatusInternalServerError, "Internal Server Error", ErrorDetail{Cause: cause})
		})

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Internal Server Error", body["message"])
		assert.NotContains(t, body, "error")
	})

	t.Run("debug mode shows cause and details", func(t *testing.T) {
		gin.SetMode(gin.DebugMode)
		defer gin.SetMode(gin.TestMode)

		code, body := render(t, func(c *gin.Context) {
			ErrorWithDetails(c, http.StatusConflict, "Duplicate field value entered", ErrorDetail{
				Field: "title",
				Cause: cause,
			})
		})

		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "title", body["field"])
		assert.Equal(t, cause.Error(), body["error"])
		assert.NotContains(t, body, "errors")
	})
}
