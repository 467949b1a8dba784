package uow

import (
	"context"

	"auto-loan-contracts/internal/domain/contract"
	"auto-loan-contracts/internal/domain/note"
)

// Repos are bound to the transaction of the enclosing UnitOfWork call.
type Repos struct {
	Contracts contract.Repository
	Notes     note.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// loads the contract first (ErrNotFound if missing), then passes it in
	WithinContractTx(ctx context.Context, id uint64, fn func(r Repos, c *contract.Contract) error) error
	// same for a promissory note
	WithinNoteTx(ctx context.Context, id uint64, fn func(r Repos, n *note.Note) error) error
}
