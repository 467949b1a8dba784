package occ

import (
	"errors"
	"testing"

	"auto-loan-contracts/internal/domain/apperr"
)

func TestStamp(t *testing.T) {
	v := InitialVersion
	if expected := Stamp(&v); expected != 1 || v != 2 {
		t.Fatalf("expected=%d version=%d", expected, v)
	}
	if expected := Stamp(&v); expected != 2 || v != 3 {
		t.Fatalf("expected=%d version=%d", expected, v)
	}
}

func TestCheck(t *testing.T) {
	if err := Check(1); err != nil {
		t.Fatalf("Check(1) = %v", err)
	}
	if err := Check(0); !errors.Is(err, apperr.ErrConcurrentModification) {
		t.Fatalf("Check(0) = %v", err)
	}
}
