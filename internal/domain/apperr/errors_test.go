package apperr

import (
	"errors"
	"strings"
	"testing"
)

func TestScheduleWriteError(t *testing.T) {
	cause := errors.New("connection reset")
	var err error = &ScheduleWriteError{ApplicationID: 42, Installment: 3, Written: 2, Err: cause}

	if !errors.Is(err, ErrScheduleIncomplete) || !errors.Is(err, cause) {
		t.Fatalf("unwrap chain broken: %v", err)
	}
	for _, part := range []string{"application 42", "installment 3", "after 2 writes", "connection reset"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("message %q lacks %q", err.Error(), part)
		}
	}
	var we *ScheduleWriteError
	if !errors.As(err, &we) || we.Installment != 3 {
		t.Fatalf("errors.As failed")
	}
}
