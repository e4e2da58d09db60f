package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   []SortKey
	}{
		{"empty", "", []SortKey{}},
		{"single desc", "-createdAt", []SortKey{{Field: "createdAt", Desc: true}}},
		{"space separated", "priority -createdAt", []SortKey{
			{Field: "priority"},
			{Field: "createdAt", Desc: true},
		}},
		{"comma separated", "severity,-priority", []SortKey{
			{Field: "severity"},
			{Field: "priority", Desc: true},
		}},
		{"explicit plus", "+title", []SortKey{{Field: "title"}}},
		{"unknown keys ignored", "-hacked; DROP TABLE bugs,status", []SortKey{{Field: "status"}}},
		{"duplicates keep first", "-priority priority", []SortKey{{Field: "priority", Desc: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSort(tt.sortBy))
		})
	}
}

func TestBuildOrderBy(t *testing.T) {
	assert.Equal(t, "created_at DESC", BuildOrderBy(""))
	assert.Equal(t, "created_at DESC", BuildOrderBy("nonsense"))
	assert.Equal(t, "priority ASC, created_at DESC", BuildOrderBy("priority -createdAt"))
	assert.Equal(t, "assigned_to DESC", BuildOrderBy("-assignedTo"))

	assert.Equal(t,
		"CASE severity WHEN 'low' THEN 0 WHEN 'medium' THEN 1 WHEN 'high' THEN 2 WHEN 'critical' THEN 3 END DESC",
		BuildOrderBy("-severity"),
	)
	assert.Equal(t,
		"CASE status WHEN 'open' THEN 0 WHEN 'in-progress' THEN 1 WHEN 'resolved' THEN 2 WHEN 'closed' THEN 3 END ASC, updated_at ASC",
		BuildOrderBy("status,updatedAt"),
	)
}
