package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	severityMessage = fmt.Sprintf("Severity must be one of: %s", joinValues(Severities))
	statusMessage   = fmt.Sprintf("Status must be one of: %s", joinValues(Statuses))
)

// ValidateBugData kiểm tra business rules theo thứ tự cố định, lỗi đầu tiên thắng.
// Trả về nil nếu hợp lệ. Severity/status vắng mặt (nil hoặc "") không phải lỗi.
func ValidateBugData(in BugInput) error {
	title := deref(in.Title)
	description := deref(in.Description)

	checks := []struct {
		value interface{}
		rules []validation.Rule
	}{
		{strings.TrimSpace(title), []validation.Rule{
			validation.Required.Error("Title is required"),
		}},
		// length kiểm tra trên giá trị raw, trước khi trim
		{title, []validation.Rule{
			validation.RuneLength(0, MaxTitleLength).Error("Title must be less than 100 characters"),
		}},
		{strings.TrimSpace(description), []validation.Rule{
			validation.Required.Error("Description is required"),
		}},
		{description, []validation.Rule{
			validation.RuneLength(0, MaxDescriptionLength).Error("Description must be less than 1000 characters"),
		}},
		{deref(in.Severity), []validation.Rule{
			validation.In(stringValues(Severities)...).Error(severityMessage),
		}},
		{deref(in.Status), []validation.Rule{
			validation.In(stringValues(Statuses)...).Error(statusMessage),
		}},
	}

	for _, check := range checks {
		if err := validation.Validate(check.value, check.rules...); err != nil {
			return err
		}
	}

	return nil
}

// Validate chạy schema constraints trên record đầy đủ (sau default / merge)
// và gom TẤT CẢ lỗi, tương đương lớp validation của store.
func (b Bug) Validate() []string {
	err := validation.ValidateStruct(&b,
		validation.Field(&b.Title,
			validation.Required.Error("Bug title is required"),
			validation.RuneLength(0, MaxTitleLength).Error("Title cannot exceed 100 characters"),
		),
		validation.Field(&b.Description,
			validation.Required.Error("Bug description is required"),
			validation.RuneLength(0, MaxDescriptionLength).Error("Description cannot exceed 1000 characters"),
		),
		validation.Field(&b.Severity,
			validation.By(func(interface{}) error {
				if !b.Severity.IsValid() {
					return fmt.Errorf("%s is not a valid severity level", b.Severity)
				}
				return nil
			}),
		),
		validation.Field(&b.Status,
			validation.By(func(interface{}) error {
				if !b.Status.IsValid() {
					return fmt.Errorf("%s is not a valid status", b.Status)
				}
				return nil
			}),
		),
		validation.Field(&b.Priority,
			validation.By(func(interface{}) error {
				switch {
				case b.Priority < MinPriority:
					return errors.New("Priority must be at least 1")
				case b.Priority > MaxPriority:
					return errors.New("Priority cannot exceed 5")
				}
				return nil
			}),
		),
	)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	// map không có thứ tự - sort theo tên field để output ổn định
	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fieldErrs[field].Error())
	}
	return messages
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringValues[T ~string](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
