// Package occ holds the optimistic concurrency guard shared by contracts and
// promissory notes. A record carries a monotonically increasing version; a
// write is accepted only while the stored version still equals the one read.
package occ

import "auto-loan-contracts/internal/domain/apperr"

// InitialVersion is the version of a freshly inserted record.
const InitialVersion int64 = 1

// Stamp advances *version by one and returns the value the store must still
// hold for the write to win.
func Stamp(version *int64) int64 {
	expected := *version
	*version = expected + 1
	return expected
}

// Check converts the affected-row count of a guarded write into an error.
func Check(rowsAffected int64) error {
	if rowsAffected == 0 {
		return apperr.ErrConcurrentModification
	}
	return nil
}
