package model

import (
	"time"

	"github.com/google/uuid"
)

// Severity mức độ nghiêm trọng của bug
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities theo thứ tự rank tăng dần, cũng là thứ tự trong error message
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func (s Severity) IsValid() bool {
	return s.Rank() >= 0
}

// Rank: low=0 ... critical=3, -1 nếu không hợp lệ
func (s Severity) Rank() int {
	for i, v := range Severities {
		if v == s {
			return i
		}
	}
	return -1
}

// Status trạng thái xử lý của bug
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses theo thứ tự lifecycle
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

func (s Status) IsValid() bool {
	return s.Rank() >= 0
}

func (s Status) Rank() int {
	for i, v := range Statuses {
		if v == s {
			return i
		}
	}
	return -1
}

// Bug là entity duy nhất của hệ thống
// age / isStale KHÔNG lưu ở đây - tính lúc format response
type Bug struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Severity     Severity  `json:"severity"`
	Status       Status    `json:"status"`
	AssignedTo   string    `json:"assignedTo"`
	Priority     int       `json:"priority"`
	Reproducible bool      `json:"reproducible"`
	Tags         []string  `json:"tags"`

	// Timestamps
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBug tạo bug từ input đã sanitize, áp dụng default cho field vắng mặt
// ID do store sinh ra khi insert
func NewBug(in BugInput, now time.Time) *Bug {
	bug := &Bug{
		Severity:   SeverityMedium,
		Status:     StatusOpen,
		AssignedTo: DefaultAssignee,
		Priority:   DefaultPriority,
		Tags:       []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	bug.Apply(in)
	return bug
}

// Apply merge các field có mặt trong input vào bug (merge-only, không unset)
func (b *Bug) Apply(in BugInput) {
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Severity != nil && *in.Severity != "" {
		b.Severity = Severity(*in.Severity)
	}
	if in.Status != nil && *in.Status != "" {
		b.Status = Status(*in.Status)
	}
	if in.AssignedTo != nil {
		b.AssignedTo = *in.AssignedTo
		// assignedTo rỗng sau khi trim coi như chưa assign
		if b.AssignedTo == "" {
			b.AssignedTo = DefaultAssignee
		}
	}
	if in.Priority != nil {
		b.Priority = *in.Priority
	}
	if in.Reproducible != nil {
		b.Reproducible = *in.Reproducible
	}
	if in.Tags != nil {
		b.Tags = append([]string{}, in.Tags...)
	}
}

// AsInput chuyển bug về dạng input để chạy lại validator trên bản đã merge
func (b *Bug) AsInput() BugInput {
	severity := string(b.Severity)
	status := string(b.Status)
	priority := b.Priority
	reproducible := b.Reproducible

	return BugInput{
		Title:        &b.Title,
		Description:  &b.Description,
		Severity:     &severity,
		Status:       &status,
		AssignedTo:   &b.AssignedTo,
		Priority:     &priority,
		Reproducible: &reproducible,
		Tags:         b.Tags,
	}
}
