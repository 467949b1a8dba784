package uowmock

import (
	"context"
	"errors"

	"auto-loan-contracts/internal/domain/contract"
	"auto-loan-contracts/internal/domain/note"
	"auto-loan-contracts/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinContractTxFn func(ctx context.Context, id uint64, fn func(r uow.Repos, c *contract.Contract) error) error
	WithinNoteTxFn     func(ctx context.Context, id uint64, fn func(r uow.Repos, n *note.Note) error) error
}

// Passthrough runs every callback directly against repos, loading the
// contract or note through them the way the real implementation does.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinContractTxFn: func(ctx context.Context, id uint64, fn func(uow.Repos, *contract.Contract) error) error {
			c, err := repos.Contracts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, c)
		},
		WithinNoteTxFn: func(ctx context.Context, id uint64, fn func(uow.Repos, *note.Note) error) error {
			n, err := repos.Notes.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return fn(repos, n)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinContractTx(ctx context.Context, id uint64, fn func(r uow.Repos, c *contract.Contract) error) error {
	if m.WithinContractTxFn != nil {
		return m.WithinContractTxFn(ctx, id, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinNoteTx(ctx context.Context, id uint64, fn func(r uow.Repos, n *note.Note) error) error {
	if m.WithinNoteTxFn != nil {
		return m.WithinNoteTxFn(ctx, id, fn)
	}
	return errUnimplemented
}
