package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response envelope cho success, "data" luôn có mặt (list rỗng là [])
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data"`
}

// ErrorBody envelope cho lỗi
// Error chỉ xuất hiện ở debug mode (gin.IsDebugging)
type ErrorBody struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Field   string   `json:"field,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ErrorDetail thông tin bổ sung cho error response
type ErrorDetail struct {
	Errors []string // danh sách lỗi validation
	Field  string   // field vi phạm unique constraint
	Cause  error    // lỗi nội bộ, chỉ trả ra ở debug mode
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessList luôn trả "count", kể cả khi bằng 0
func SuccessList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{
		Success: false,
		Message: message,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, detail ErrorDetail) {
	resp := ErrorBody{
		Success: false,
		Message: message,
		Errors:  detail.Errors,
		Field:   detail.Field,
	}
	if detail.Cause != nil && gin.IsDebugging() {
		resp.Error = detail.Cause.Error()
	}
	c.JSON(statusCode, resp)
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, message)
}
