package repository

import (
	"fmt"
	"strings"

	"bugtracker-backend/internal/domains/bug/model"
)

const defaultOrderBy = "created_at DESC"

// SortKey một key trong sortBy, ví dụ "-createdAt" -> {createdAt, true}
type SortKey struct {
	Field string
	Desc  bool
}

// sortColumns whitelist: field public -> SQL expression
// severity / status sort theo rank chứ không theo alphabet
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"title":      "title",
	"severity":   rankExpr("severity", model.Severities),
	"status":     rankExpr("status", model.Statuses),
	"priority":   "priority",
	"assignedTo": "assigned_to",
}

// ParseSort tách sortBy theo dấu cách hoặc dấu phẩy.
// Key không nằm trong whitelist bị bỏ qua, key lặp lại chỉ lấy lần đầu.
func ParseSort(sortBy string) []SortKey {
	parts := strings.FieldsFunc(sortBy, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	seen := make(map[string]bool, len(parts))
	keys := make([]SortKey, 0, len(parts))

	for _, part := range parts {
		key := SortKey{Field: part}
		switch {
		case strings.HasPrefix(part, "-"):
			key = SortKey{Field: part[1:], Desc: true}
		case strings.HasPrefix(part, "+"):
			key = SortKey{Field: part[1:]}
		}

		if _, ok := sortColumns[key.Field]; !ok || seen[key.Field] {
			continue
		}
		seen[key.Field] = true
		keys = append(keys, key)
	}

	return keys
}

// BuildOrderBy trả về mệnh đề ORDER BY (không kèm keyword), default created_at DESC
func BuildOrderBy(sortBy string) string {
	keys := ParseSort(sortBy)
	if len(keys) == 0 {
		return defaultOrderBy
	}

	clauses := make([]string, 0, len(keys))
	for _, key := range keys {
		direction := "ASC"
		if key.Desc {
			direction = "DESC"
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", sortColumns[key.Field], direction))
	}

	return strings.Join(clauses, ", ")
}

func rankExpr[T ~string](column string, values []T) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for i, v := range values {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", v, i)
	}
	b.WriteString(" END")
	return b.String()
}
