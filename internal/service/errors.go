package service

import "fmt"

// BusinessError is a state or precondition violation surfaced to the caller
// as a 400 with a machine-readable code. These are terminal per request and
// never retried.
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

// Business rule violations raised by the domain services.
var (
	ErrNoRemainingHours  = &BusinessError{Code: "NO_HOURS", Message: "contract has no remaining hours"}
	ErrSessionInProgress = &BusinessError{Code: "SESSION_IN_PROGRESS", Message: "a session is already in progress for this contract"}
	ErrNotesRequired     = &BusinessError{Code: "NOTES_REQUIRED", Message: "lesson notes are required to check out"}
	ErrAlreadyCheckedOut = &BusinessError{Code: "ALREADY_CHECKED_OUT", Message: "session has already been checked out"}
	ErrContractInactive  = &BusinessError{Code: "CONTRACT_INACTIVE", Message: "contract is not active"}
	ErrSessionNotOpen    = &BusinessError{Code: "SESSION_NOT_OPEN", Message: "session is not in progress"}
	ErrNoActiveStudents  = &BusinessError{Code: "NO_ACTIVE_STUDENTS", Message: "no enrolled student holds an active contract"}
	ErrInvalidStatus     = &BusinessError{Code: "INVALID_STATUS", Message: "invalid status value"}
	ErrInvalidHours      = &BusinessError{Code: "INVALID_HOURS", Message: "hours must not be negative"}
)

// NotFoundError marks an entity that is absent or not accessible to the
// caller. Handlers map it to a 404.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Entity) }

// Not-found sentinels shared across services.
var (
	ErrContractNotFound     = &NotFoundError{Entity: "contract"}
	ErrAttendanceNotFound   = &NotFoundError{Entity: "attendance log"}
	ErrGroupClassNotFound   = &NotFoundError{Entity: "group class"}
	ErrGroupSessionNotFound = &NotFoundError{Entity: "group session"}
	ErrHomeworkNotFound     = &NotFoundError{Entity: "homework"}
	ErrNotificationNotFound = &NotFoundError{Entity: "notification"}
	ErrHolidayNotFound      = &NotFoundError{Entity: "holiday"}
	ErrStudentNotFound      = &NotFoundError{Entity: "student"}
	ErrTeacherNotFound      = &NotFoundError{Entity: "teacher"}
	ErrSubscriptionNotFound = &NotFoundError{Entity: "subscription"}
)
