package model

import (
	"time"
)

// AgeInDays số ngày (làm tròn lên) kể từ createdAt tới now
// Bug format ngay tại thời điểm tạo có age = 0, 1ns sau đã là 1
func AgeInDays(createdAt, now time.Time) int {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}

	days := elapsed / Day
	if elapsed%Day != 0 {
		days++
	}
	return int(days)
}

// IsStale: còn open và đã quá StaleAfterDays ngày
func IsStale(status Status, age int) bool {
	return status == StatusOpen && age > StaleAfterDays
}

// FormatBugResponse project bug đã lưu ra public representation
// Pure function của (bug, now)
func FormatBugResponse(bug *Bug, now time.Time) BugResponse {
	tags := bug.Tags
	if tags == nil {
		tags = []string{}
	}

	age := AgeInDays(bug.CreatedAt, now)

	return BugResponse{
		ID:           bug.ID,
		LegacyID:     bug.ID,
		Title:        bug.Title,
		Description:  bug.Description,
		Severity:     bug.Severity,
		Status:       bug.Status,
		AssignedTo:   bug.AssignedTo,
		Priority:     bug.Priority,
		Reproducible: bug.Reproducible,
		Tags:         tags,
		Age:          age,
		IsStale:      IsStale(bug.Status, age),
		CreatedAt:    bug.CreatedAt,
		UpdatedAt:    bug.UpdatedAt,
	}
}

// FormatBugList format cả danh sách với cùng một "now"
func FormatBugList(bugs []*Bug, now time.Time) []BugResponse {
	out := make([]BugResponse, 0, len(bugs))
	for _, bug := range bugs {
		out = append(out, FormatBugResponse(bug, now))
	}
	return out
}
