package model

import "fmt"

// ErrorCode classifies division operation failures.
type ErrorCode int

const (
	// Validation failures (1xxx)
	ErrCodeInvalidArgument ErrorCode = 1001
	ErrCodeInvalidLink     ErrorCode = 1002
	ErrCodeOutOfRange      ErrorCode = 1003
	ErrCodeSettingLocked   ErrorCode = 1004

	// Capacity failures (2xxx)
	ErrCodeDivisionFull ErrorCode = 2001

	// State and lookup failures (3xxx)
	ErrCodeNotFound      ErrorCode = 3001
	ErrCodeNotMember     ErrorCode = 3002
	ErrCodeNotBanned     ErrorCode = 3003
	ErrCodeAlreadyMember ErrorCode = 3004
	ErrCodeBanned        ErrorCode = 3005
	ErrCodeNameTaken     ErrorCode = 3006

	// Persistence failures (4xxx)
	ErrCodeStorage ErrorCode = 4001
)

// Error is a classified division error. Validation, capacity, and state
// rejections all surface through this type so callers can branch on Code.
type Error struct {
	Code   ErrorCode `json:"code"`
	Detail string    `json:"detail"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Detail)
}

// CodeOf returns the error's code, or 0 for foreign errors.
func CodeOf(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return 0
}

// Common error constructors

func NewInvalidArgumentError(detail string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Detail: detail}
}

func NewInvalidLinkError(platform Platform, link string) *Error {
	return &Error{
		Code:   ErrCodeInvalidLink,
		Detail: fmt.Sprintf("invalid %s link %q", platform, link),
	}
}

func NewOutOfRangeError(detail string) *Error {
	return &Error{Code: ErrCodeOutOfRange, Detail: detail}
}

func NewSettingLockedError(key string, unlockLevel, level int) *Error {
	return &Error{
		Code:   ErrCodeSettingLocked,
		Detail: fmt.Sprintf("setting %q unlocks at level %d, division is level %d", key, unlockLevel, level),
	}
}

func NewDivisionFullError(limit, current int) *Error {
	return &Error{
		Code:   ErrCodeDivisionFull,
		Detail: fmt.Sprintf("division holds %d of at most %d members", current, limit),
	}
}

func NewNotFoundError(resource string) *Error {
	return &Error{Code: ErrCodeNotFound, Detail: fmt.Sprintf("%s not found", resource)}
}

func NewNotMemberError() *Error {
	return &Error{Code: ErrCodeNotMember, Detail: "player is not a member of this division"}
}

func NewNotBannedError() *Error {
	return &Error{Code: ErrCodeNotBanned, Detail: "player is not banned from this division"}
}

func NewAlreadyMemberError() *Error {
	return &Error{Code: ErrCodeAlreadyMember, Detail: "player is already a member of a division"}
}

func NewBannedError() *Error {
	return &Error{Code: ErrCodeBanned, Detail: "player is banned from this division"}
}

func NewNameTakenError(name string) *Error {
	return &Error{Code: ErrCodeNameTaken, Detail: fmt.Sprintf("a division named %q already exists", name)}
}

func NewStorageError(detail string) *Error {
	return &Error{Code: ErrCodeStorage, Detail: detail}
}
