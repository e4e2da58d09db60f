package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"bugtracker-backend/internal/domains/bug/model"
)

// =====================================================
// BUG SERVICE INTERFACE
// =====================================================

// ServiceInterface mọi lỗi trả về đều là *model.BugError
type ServiceInterface interface {
	// ========================================
	// QUERIES
	// ========================================

	// ListBugs filter + sort, list rỗng vẫn là success
	ListBugs(ctx context.Context, req model.ListBugsRequest) (*model.ListBugsResponse, error)

	// ListCriticalBugs severity critical, chưa closed
	ListCriticalBugs(ctx context.Context) (*model.ListBugsResponse, error)

	// GetBug id sai format -> InvalidIdentifier, không tồn tại -> NotFound
	GetBug(ctx context.Context, id string) (*model.BugResponse, error)

	// GetStats aggregate theo status, severity và tổng
	GetStats(ctx context.Context) (*model.BugStats, error)

	// ExportBugs workbook .xlsx cùng filter / thứ tự với ListBugs
	ExportBugs(ctx context.Context, req model.ListBugsRequest) (*excelize.File, error)

	// ========================================
	// COMMANDS
	// ========================================

	CreateBug(ctx context.Context, in model.BugInput) (*model.BugResponse, error)

	// UpdateBug merge-only: field vắng mặt giữ nguyên giá trị đã lưu
	UpdateBug(ctx context.Context, id string, in model.BugInput) (*model.BugResponse, error)

	// DeleteBug hard delete, trả về id đã xóa
	DeleteBug(ctx context.Context, id string) (*model.DeleteBugResponse, error)
}
