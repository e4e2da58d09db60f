package repository

import (
	"context"

	"github.com/google/uuid"

	"bugtracker-backend/internal/domains/bug/model"
)

// =====================================================
// BUG REPOSITORY INTERFACE
// =====================================================

// BugMutator sửa bug đang bị lock, trả error để rollback
type BugMutator func(bug *model.Bug) error

type BugRepository interface {
	// ========================================
	// CRUD Operations
	// ========================================

	// Create insert bug, ID do database sinh ra và được gán lại vào bug
	Create(ctx context.Context, bug *model.Bug) error

	// GetByID trả về model.ErrBugNotFound nếu không tồn tại
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bug, error)

	// Update lock row, gọi mutate trên bản hiện tại rồi lưu, trả về bản đã lưu
	// model.ErrBugNotFound nếu không tồn tại; lỗi của mutate được trả nguyên vẹn
	Update(ctx context.Context, id uuid.UUID, mutate BugMutator) (*model.Bug, error)

	// Delete hard delete
	Delete(ctx context.Context, id uuid.UUID) error

	// ========================================
	// LIST Operations
	// ========================================

	// List filter theo status / severity (exact match) và sort theo sortBy
	List(ctx context.Context, filter model.ListBugsRequest) ([]*model.Bug, error)

	// ListCritical severity critical và chưa closed, mới nhất trước
	ListCritical(ctx context.Context) ([]*model.Bug, error)

	// ========================================
	// STATISTICS
	// ========================================

	// Stats đếm theo status, severity và tổng, cùng một snapshot
	Stats(ctx context.Context) (*model.BugStats, error)
}
