package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bugtracker-backend/internal/domains/bug/model"
	"bugtracker-backend/internal/domains/bug/service"
	"bugtracker-backend/internal/shared/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// =====================================================
// BUG HANDLER
// =====================================================

type BugHandler struct {
	bugService service.ServiceInterface
}

func NewBugHandler(bugService service.ServiceInterface) *BugHandler {
	return &BugHandler{
		bugService: bugService,
	}
}

// RegisterRoutes mount toàn bộ bug routes lên group
// Route tĩnh (stats, critical, export) phải đăng ký trước /:id
func (h *BugHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListBugs)
	rg.GET("/stats", h.GetStats)
	rg.GET("/critical", h.ListCriticalBugs)
	rg.GET("/export", h.ExportBugs)
	rg.GET("/:id", h.GetBug)
	rg.POST("", h.CreateBug)
	rg.PUT("/:id", h.UpdateBug)
	rg.DELETE("/:id", h.DeleteBug)
}

// =====================================================
// QUERY ENDPOINTS
// =====================================================

// ListBugs GET /bugs?status=&severity=&sortBy=
func (h *BugHandler) ListBugs(c *gin.Context) {
	var req model.ListBugsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.bugService.ListBugs(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessList(c, result.Count, result.Bugs)
}

// ListCriticalBugs GET /bugs/critical
func (h *BugHandler) ListCriticalBugs(c *gin.Context) {
	result, err := h.bugService.ListCriticalBugs(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessList(c, result.Count, result.Bugs)
}

// GetStats GET /bugs/stats
func (h *BugHandler) GetStats(c *gin.Context) {
	stats, err := h.bugService.GetStats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// GetBug GET /bugs/:id
func (h *BugHandler) GetBug(c *gin.Context) {
	bug, err := h.bugService.GetBug(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, bug)
}

// ExportBugs GET /bugs/export - file .xlsx, cùng filter với ListBugs
func (h *BugHandler) ExportBugs(c *gin.Context) {
	var req model.ListBugsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	f, err := h.bugService.ExportBugs(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close export workbook")
		}
	}()

	filename := fmt.Sprintf("bugs-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if _, err := f.WriteTo(c.Writer); err != nil {
		// header đã gửi, chỉ còn cách log
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Failed to stream export")
	}
}

// =====================================================
// COMMAND ENDPOINTS
// =====================================================

// CreateBug POST /bugs
func (h *BugHandler) CreateBug(c *gin.Context) {
	var in model.BugInput
	if err := bindBugInput(c, &in); err != nil {
		respondBadRequest(c, err)
		return
	}

	bug, err := h.bugService.CreateBug(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Bug created successfully", bug)
}

// UpdateBug PUT /bugs/:id
func (h *BugHandler) UpdateBug(c *gin.Context) {
	var in model.BugInput
	if err := bindBugInput(c, &in); err != nil {
		respondBadRequest(c, err)
		return
	}

	bug, err := h.bugService.UpdateBug(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Bug updated successfully", bug)
}

// DeleteBug DELETE /bugs/:id
func (h *BugHandler) DeleteBug(c *gin.Context) {
	deleted, err := h.bugService.DeleteBug(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Bug deleted successfully", deleted)
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

// bindBugInput body rỗng coi như object rỗng để validator trả lỗi cụ thể
func bindBugInput(c *gin.Context, in *model.BugInput) error {
	if err := c.ShouldBindJSON(in); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func respondBadRequest(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", response.ErrorDetail{
		Cause: err,
	})
}

// handleError điểm duy nhất map error kind -> HTTP status
func handleError(c *gin.Context, err error) {
	bugErr := model.AsBugError(err)
	if bugErr == nil {
		bugErr = model.NewUnexpectedError("handler", err)
	}

	status := mapBugError(bugErr)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	response.ErrorWithDetails(c, status, bugErr.Message, response.ErrorDetail{
		Errors: bugErr.Errors,
		Field:  bugErr.Field,
		Cause:  bugErr.Err,
	})
}

// mapBugError maps bug error kind to HTTP status code
func mapBugError(err *model.BugError) int {
	switch err.Kind {
	case model.KindInvalidInput, model.KindInvalidIdentifier:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
