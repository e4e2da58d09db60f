package model

import (
	"errors"
	"fmt"
)

// ErrorKind phân loại lỗi, tầng HTTP map mỗi kind sang đúng một status code
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindInvalidInput
	KindInvalidIdentifier
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindInvalidIdentifier:
		return "InvalidIdentifier"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "Unexpected"
	}
}

// Error codes
const (
	ErrCodeBugNotFound      = "BUG001"
	ErrCodeInvalidInput     = "BUG002"
	ErrCodeInvalidID        = "BUG003"
	ErrCodeSchemaValidation = "BUG004"
	ErrCodeDuplicateField   = "BUG005"
	ErrCodeInternal         = "BUG500"
)

// User-visible messages
const (
	ValidationErrorMessage = "Validation Error"
	InvalidIDMessage       = "Invalid bug ID format"
	NotFoundMessage        = "Bug not found"
	DuplicateFieldMessage  = "Duplicate field value entered"
	InternalErrorMessage   = "Internal Server Error"
)

// Repository-level sentinel errors
var (
	ErrBugNotFound         = errors.New("bug not found")
	ErrDuplicateField      = errors.New("duplicate field value")
	ErrConstraintViolation = errors.New("constraint violation")
)

// DuplicateFieldError mang theo tên field vi phạm unique constraint
type DuplicateFieldError struct {
	Field string
	Err   error
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate value for field %s: %v", e.Field, e.Err)
}

func (e *DuplicateFieldError) Unwrap() error {
	return ErrDuplicateField
}

// BugError custom error type của domain
type BugError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Errors  []string // multi-field schema validation
	Field   string   // field vi phạm unique constraint
	Err     error
}

func (e *BugError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BugError) Unwrap() error {
	return e.Err
}

// AsBugError lấy *BugError trong chain, nil nếu không có
func AsBugError(err error) *BugError {
	var bugErr *BugError
	if errors.As(err, &bugErr) {
		return bugErr
	}
	return nil
}

// Error constructors
func NewInvalidInputError(message string) *BugError {
	return &BugError{
		Kind:    KindInvalidInput,
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

func NewSchemaValidationError(messages []string) *BugError {
	return &BugError{
		Kind:    KindInvalidInput,
		Code:    ErrCodeSchemaValidation,
		Message: ValidationErrorMessage,
		Errors:  messages,
	}
}

func NewInvalidIDError(id string, err error) *BugError {
	return &BugError{
		Kind:    KindInvalidIdentifier,
		Code:    ErrCodeInvalidID,
		Message: InvalidIDMessage,
		Err:     fmt.Errorf("id %q: %w", id, err),
	}
}

func NewBugNotFoundError() *BugError {
	return &BugError{
		Kind:    KindNotFound,
		Code:    ErrCodeBugNotFound,
		Message: NotFoundMessage,
		Err:     ErrBugNotFound,
	}
}

func NewDuplicateFieldError(field string, err error) *BugError {
	return &BugError{
		Kind:    KindConflict,
		Code:    ErrCodeDuplicateField,
		Message: DuplicateFieldMessage,
		Field:   field,
		Err:     err,
	}
}

func NewUnexpectedError(op string, err error) *BugError {
	return &BugError{
		Kind:    KindUnexpected,
		Code:    ErrCodeInternal,
		Message: InternalErrorMessage,
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}
