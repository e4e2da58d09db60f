package model

import "time"

const (
	// Content limits
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000

	// Priority
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3

	DefaultAssignee = "Unassigned"

	// Bug "stale" khi còn open quá số ngày này
	StaleAfterDays = 30

	Day = 24 * time.Hour
)

// Cache keys
const (
	CacheKeyPrefix = "bugs:"
	CacheKeyStats  = CacheKeyPrefix + "stats"
)
