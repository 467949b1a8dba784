package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrDuplicateContract      = errors.New("contract already exists for application")
	ErrDuplicateSchedule      = errors.New("promissory notes already exist for application")
	ErrInvalidTransition      = errors.New("invalid state transition")
	ErrAlreadyCancelled       = errors.New("contract already cancelled")
	ErrAlreadyInactive        = errors.New("promissory note already inactive")
	ErrInvalidScheduleInput   = errors.New("invalid schedule input")
	ErrInvalidNote            = errors.New("invalid promissory note")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrIDMismatch             = errors.New("path id does not match body id")
	ErrScheduleIncomplete     = errors.New("schedule generation incomplete")
)

// ScheduleWriteError reports a note insert that failed partway through a batch.
// The surrounding transaction is rolled back, so Written counts rows that were
// discarded, not rows that remain.
type ScheduleWriteError struct {
	ApplicationID int64
	Installment   int
	Written       int
	Err           error
}

func (e *ScheduleWriteError) Error() string {
	return fmt.Sprintf("%s: application %d failed at installment %d after %d writes: %v",
		ErrScheduleIncomplete, e.ApplicationID, e.Installment, e.Written, e.Err)
}

func (e *ScheduleWriteError) Unwrap() []error { return []error{ErrScheduleIncomplete, e.Err} }
