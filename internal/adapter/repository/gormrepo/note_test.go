package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"auto-loan-contracts/internal/domain/apperr"
	"auto-loan-contracts/internal/domain/note"
	"auto-loan-contracts/internal/domain/occ"
)

func seedNotes(t *testing.T, repo *NoteRepository, appID int64, n int) []*note.Note {
	t.Helper()
	out := make([]*note.Note, 0, n)
	// insert in reverse to prove ordering comes from the query
	for i := n; i >= 1; i-- {
		nt := note.New(appID, i, t0)
		if err := repo.Create(context.Background(), nt); err != nil {
			t.Fatalf("create note %d: %v", i, err)
		}
		out = append(out, nt)
	}
	return out
}

func TestNoteRepository_ListOrderedByInstallment(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(openTestDB(t))
	seedNotes(t, repo, 77, 3)
	seedNotes(t, repo, 78, 1)

	list, err := repo.ListByApplicationID(ctx, 77)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d", len(list))
	}
	for i, n := range list {
		if n.InstallmentNumber != i+1 || !n.Active || n.Version != 1 {
			t.Fatalf("row %d = %+v", i, n)
		}
	}

	got, err := repo.GetByApplicationAndInstallment(ctx, 77, 2)
	if err != nil || got.InstallmentNumber != 2 {
		t.Fatalf("GetByApplicationAndInstallment = %+v, %v", got, err)
	}
	if _, err := repo.GetByApplicationAndInstallment(ctx, 77, 9); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing installment err = %v", err)
	}

	empty, err := repo.ListByApplicationID(ctx, 1)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty list = %v, %v", empty, err)
	}
}

func TestNoteRepository_DuplicateInstallment(t *testing.T) {
	repo := NewNoteRepository(openTestDB(t))
	seedNotes(t, repo, 5, 1)

	err := repo.Create(context.Background(), note.New(5, 1, t0.Add(time.Second)))
	if !errors.Is(err, apperr.ErrDuplicateSchedule) {
		t.Fatalf("err = %v, want ErrDuplicateSchedule", err)
	}
}

func TestNoteRepository_SaveChecksVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(openTestDB(t))
	n := seedNotes(t, repo, 5, 1)[0]

	stale, _ := repo.GetByID(ctx, n.ID)

	expected := occ.Stamp(&n.Version)
	if err := n.Deactivate(); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := repo.Save(ctx, n, expected); err != nil {
		t.Fatalf("save: %v", err)
	}

	expected = occ.Stamp(&stale.Version)
	stale.InstallmentNumber = 4
	if err := repo.Save(ctx, stale, expected); !errors.Is(err, apperr.ErrConcurrentModification) {
		t.Fatalf("stale save err = %v", err)
	}

	got, _ := repo.GetByID(ctx, n.ID)
	if got.Active || got.Version != 2 || got.InstallmentNumber != 1 {
		t.Fatalf("row = %+v", got)
	}
}

func TestNoteRepository_ExistsAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(openTestDB(t))
	seedNotes(t, repo, 12, 4)
	seedNotes(t, repo, 13, 2)

	ok, err := repo.ExistsByApplicationID(ctx, 12)
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v", ok, err)
	}

	n, err := repo.DeleteByApplicationID(ctx, 12)
	if err != nil || n != 4 {
		t.Fatalf("delete = %d, %v", n, err)
	}
	ok, _ = repo.ExistsByApplicationID(ctx, 12)
	if ok {
		t.Fatalf("notes for 12 still exist")
	}
	left, _ := repo.ListByApplicationID(ctx, 13)
	if len(left) != 2 {
		t.Fatalf("other application touched: %d", len(left))
	}

	n, err = repo.DeleteByApplicationID(ctx, 12)
	if err != nil || n != 0 {
		t.Fatalf("second delete = %d, %v", n, err)
	}
}
