package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAgeInDays(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, AgeInDays(created, created))
	assert.Equal(t, 1, AgeInDays(created, created.Add(time.Minute)))
	assert.Equal(t, 1, AgeInDays(created, created.Add(Day)))
	assert.Equal(t, 2, AgeInDays(created, created.Add(Day+time.Second)))
	// clock skew: dùng khoảng cách tuyệt đối
	assert.Equal(t, 1, AgeInDays(created, created.Add(-time.Hour)))
}

func TestFormatBugResponse(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	id := uuid.New()

	bug := &Bug{
		ID:          id,
		Title:       "Crash",
		Description: "Crashes",
		Severity:    SeverityHigh,
		Status:      StatusOpen,
		AssignedTo:  DefaultAssignee,
		Priority:    2,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	t.Run("created now has age 0 and is fresh", func(t *testing.T) {
		resp := FormatBugResponse(bug, now)

		assert.Equal(t, id, resp.ID)
		assert.Equal(t, id, resp.LegacyID)
		assert.Equal(t, "Crash", resp.Title)
		assert.Equal(t, SeverityHigh, resp.Severity)
		assert.Equal(t, 2, resp.Priority)
		assert.Equal(t, []string{}, resp.Tags)
		assert.Equal(t, 0, resp.Age)
		assert.False(t, resp.IsStale)
		assert.Equal(t, now, resp.CreatedAt)
	})

	t.Run("open bug older than 30 days is stale", func(t *testing.T) {
		old := *bug
		old.CreatedAt = now.Add(-31 * Day)

		resp := FormatBugResponse(&old, now)
		assert.Equal(t, 31, resp.Age)
		assert.True(t, resp.IsStale)
	})

	t.Run("closed bug is never stale", func(t *testing.T) {
		old := *bug
		old.CreatedAt = now.Add(-31 * Day)
		old.Status = StatusClosed

		resp := FormatBugResponse(&old, now)
		assert.False(t, resp.IsStale)
	})

	t.Run("exactly 30 days is not stale", func(t *testing.T) {
		old := *bug
		old.CreatedAt = now.Add(-30 * Day)

		resp := FormatBugResponse(&old, now)
		assert.Equal(t, 30, resp.Age)
		assert.False(t, resp.IsStale)
	})
}

func TestNewBugDefaultsAndApply(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	bug := NewBug(BugInput{Title: strPtr("T"), Description: strPtr("D"), AssignedTo: strPtr("")}, now)
	assert.Equal(t, SeverityMedium, bug.Severity)
	assert.Equal(t, StatusOpen, bug.Status)
	assert.Equal(t, DefaultAssignee, bug.AssignedTo)
	assert.Equal(t, DefaultPriority, bug.Priority)
	assert.False(t, bug.Reproducible)
	assert.Equal(t, []string{}, bug.Tags)
	assert.Equal(t, now, bug.CreatedAt)
	assert.Equal(t, now, bug.UpdatedAt)

	bug.Apply(BugInput{Status: strPtr("closed"), Tags: []string{"b", "a"}})
	assert.Equal(t, "T", bug.Title)
	assert.Equal(t, StatusClosed, bug.Status)
	assert.Equal(t, []string{"b", "a"}, bug.Tags)

	assert.Equal(t, 2, SeverityHigh.Rank())
	assert.Equal(t, -1, Severity("x").Rank())
	assert.True(t, StatusInProgress.IsValid())
	assert.Equal(t, 0, CountFor([]GroupCount{{Value: "open", Count: 2}}, "closed"))
}
