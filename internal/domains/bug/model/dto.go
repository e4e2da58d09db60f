package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// BugInput là payload cho create (POST) và update (PUT)
// Pointer = field có mặt trong request; nil = vắng mặt
// Tags: nil = vắng mặt, slice rỗng = xóa hết tags
type BugInput struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Severity     *string  `json:"severity"`
	Status       *string  `json:"status"`
	AssignedTo   *string  `json:"assignedTo"`
	Priority     *int     `json:"priority"`
	Reproducible *bool    `json:"reproducible"`
	Tags         []string `json:"tags"`
}

// ListBugsRequest query parameters cho GET /bugs
type ListBugsRequest struct {
	Status   string `form:"status"`
	Severity string `form:"severity"`
	// SortBy theo cú pháp "-createdAt", "priority -createdAt", "severity,-priority"
	SortBy string `form:"sortBy"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// BugResponse là public representation của một bug
// _id giữ lại cho client cũ vốn key theo _id
type BugResponse struct {
	ID           uuid.UUID `json:"id"`
	LegacyID     uuid.UUID `json:"_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Severity     Severity  `json:"severity"`
	Status       Status    `json:"status"`
	AssignedTo   string    `json:"assignedTo"`
	Priority     int       `json:"priority"`
	Reproducible bool      `json:"reproducible"`
	Tags         []string  `json:"tags"`
	Age          int       `json:"age"`
	IsStale      bool      `json:"isStale"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListBugsResponse kết quả list kèm count
type ListBugsResponse struct {
	Bugs  []BugResponse
	Count int
}

// GroupCount một nhóm trong aggregate, nhóm có count = 0 không xuất hiện
type GroupCount struct {
	Value string `json:"_id"`
	Count int    `json:"count"`
}

// BugStats kết quả GET /bugs/stats
type BugStats struct {
	ByStatus   []GroupCount `json:"byStatus"`
	BySeverity []GroupCount `json:"bySeverity"`
	Total      int          `json:"total"`
}

// CountFor trả về count của value, 0 nếu nhóm vắng mặt
func CountFor(groups []GroupCount, value string) int {
	for _, g := range groups {
		if g.Value == value {
			return g.Count
		}
	}
	return 0
}

// DeleteBugResponse data trả về sau khi xóa
type DeleteBugResponse struct {
	ID string `json:"id"`
}
