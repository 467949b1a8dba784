package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"auto-loan-contracts/internal/domain/apperr"
	"auto-loan-contracts/internal/domain/contract"
	"auto-loan-contracts/internal/domain/occ"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func seedContract(t *testing.T, repo *ContractRepository, appID int64) *contract.Contract {
	t.Helper()
	c := contract.New(appID, "", t0)
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("create %d: %v", appID, err)
	}
	return c
}

func TestContractRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(openTestDB(t))

	c := seedContract(t, repo, 501)
	if c.ID == 0 {
		t.Fatalf("expected id assigned")
	}

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ApplicationID != 501 || got.Status != contract.StatusDraft || got.Version != 1 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.DocumentPath != "/contracts/generated/contract_501.pdf" {
		t.Fatalf("document path = %q", got.DocumentPath)
	}

	byApp, err := repo.GetByApplicationID(ctx, 501)
	if err != nil || byApp.ID != c.ID {
		t.Fatalf("GetByApplicationID = %+v, %v", byApp, err)
	}

	ok, err := repo.ExistsByApplicationID(ctx, 501)
	if err != nil || !ok {
		t.Fatalf("ExistsByApplicationID = %v, %v", ok, err)
	}
	ok, err = repo.ExistsByApplicationID(ctx, 999)
	if err != nil || ok {
		t.Fatalf("ExistsByApplicationID(999) = %v, %v", ok, err)
	}
}

func TestContractRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(openTestDB(t))

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetByID err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByApplicationID(ctx, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("GetByApplicationID err = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteByID(ctx, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("DeleteByID err = %v, want ErrNotFound", err)
	}
}

func TestContractRepository_DuplicateApplication(t *testing.T) {
	repo := NewContractRepository(openTestDB(t))
	seedContract(t, repo, 7)

	err := repo.Create(context.Background(), contract.New(7, "", t0))
	if !errors.Is(err, apperr.ErrDuplicateContract) {
		t.Fatalf("err = %v, want ErrDuplicateContract", err)
	}
}

func TestContractRepository_SaveChecksVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(openTestDB(t))
	c := seedContract(t, repo, 11)

	// two readers of version 1
	a, _ := repo.GetByID(ctx, c.ID)
	b, _ := repo.GetByID(ctx, c.ID)

	expected := occ.Stamp(&a.Version)
	if err := a.Sign(t0.Add(time.Hour)); err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := repo.Save(ctx, a, expected); err != nil {
		t.Fatalf("first save: %v", err)
	}

	expected = occ.Stamp(&b.Version)
	if err := b.Cancel("late"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := repo.Save(ctx, b, expected); !errors.Is(err, apperr.ErrConcurrentModification) {
		t.Fatalf("stale save err = %v, want ErrConcurrentModification", err)
	}

	got, _ := repo.GetByID(ctx, c.ID)
	if got.Status != contract.StatusSigned || got.Version != 2 || got.SignedAt == nil {
		t.Fatalf("row after race: %+v", got)
	}
}

func TestContractRepository_SaveRejectsTakenApplication(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(openTestDB(t))
	seedContract(t, repo, 1)
	c := seedContract(t, repo, 2)

	expected := occ.Stamp(&c.Version)
	c.ApplicationID = 1
	if err := repo.Save(ctx, c, expected); !errors.Is(err, apperr.ErrDuplicateContract) {
		t.Fatalf("err = %v, want ErrDuplicateContract", err)
	}
}

func TestContractRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(openTestDB(t))
	for i := int64(1); i <= 5; i++ {
		seedContract(t, repo, 100+i)
	}
	signed, _ := repo.GetByApplicationID(ctx, 103)
	expected := occ.Stamp(&signed.Version)
	_ = signed.Sign(t0)
	if err := repo.Save(ctx, signed, expected); err != nil {
		t.Fatalf("save: %v", err)
	}

	rows, total, err := repo.List(ctx, contract.ListFilter{}, contract.Page{Number: 1, Size: 2, SortBy: "application_id", Desc: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 || len(rows) != 2 {
		t.Fatalf("total=%d len=%d", total, len(rows))
	}
	if rows[0].ApplicationID != 103 || rows[1].ApplicationID != 102 {
		t.Fatalf("page order = %d,%d", rows[0].ApplicationID, rows[1].ApplicationID)
	}

	st := contract.StatusSigned
	rows, total, err = repo.List(ctx, contract.ListFilter{Status: &st}, contract.Page{Size: 10, SortBy: "bogus"})
	if err != nil || total != 1 || len(rows) != 1 || rows[0].ApplicationID != 103 {
		t.Fatalf("filtered list = %+v total=%d err=%v", rows, total, err)
	}

	drafts, err := repo.CountByStatus(ctx, contract.StatusDraft)
	if err != nil || drafts != 4 {
		t.Fatalf("CountByStatus(DRAFT) = %d, %v", drafts, err)
	}
}

func TestContractRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()
	repo := NewContractRepository(openTestDB(t))
	c := seedContract(t, repo, 9)

	if err := repo.DeleteByID(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, c.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("after delete err = %v", err)
	}
}
