package model

import (
	"regexp"
	"strings"
)

var (
	// <script ...> ... </script>, không phân biệt hoa thường, nội dung có thể nhiều dòng
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	// thẻ <script> / </script> lẻ còn sót lại sau khi xóa block
	scriptTagRe = regexp.MustCompile(`(?i)</?script\b[^>]*>`)
)

// SanitizeString xóa script markup rồi trim whitespace.
// Lặp tới khi ổn định: xóa một block có thể ghép ra block mới ("<scr<script></script>ipt>").
func SanitizeString(s string) string {
	for {
		cleaned := removeAll(scriptBlockRe, s)
		cleaned = scriptTagRe.ReplaceAllString(cleaned, "")
		if cleaned == s {
			break
		}
		s = cleaned
	}
	return strings.TrimSpace(s)
}

// block phải xóa hết trước khi xóa thẻ lẻ, nếu không nội dung script sẽ lọt ra
func removeAll(re *regexp.Regexp, s string) string {
	for {
		next := re.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

// SanitizeInput trả về bản copy của input với mọi string field đã sanitize.
// Field non-string (priority, reproducible) giữ nguyên, input gốc không bị sửa.
func SanitizeInput(in BugInput) BugInput {
	out := BugInput{
		Title:        sanitizePtr(in.Title),
		Description:  sanitizePtr(in.Description),
		Severity:     sanitizePtr(in.Severity),
		Status:       sanitizePtr(in.Status),
		AssignedTo:   sanitizePtr(in.AssignedTo),
		Priority:     in.Priority,
		Reproducible: in.Reproducible,
	}

	if in.Tags != nil {
		out.Tags = make([]string, len(in.Tags))
		for i, tag := range in.Tags {
			out.Tags[i] = SanitizeString(tag)
		}
	}

	return out
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := SanitizeString(*s)
	return &v
}
