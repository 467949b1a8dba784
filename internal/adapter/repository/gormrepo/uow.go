package gormrepo

import (
	"context"

	"auto-loan-contracts/internal/domain/contract"
	"auto-loan-contracts/internal/domain/note"
	"auto-loan-contracts/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

var _ uow.UnitOfWork = (*GormUoW)(nil)

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Contracts: &ContractRepository{db: tx},
		Notes:     &NoteRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

// WithinContractTx reads the contract without a row lock; the version check on
// Save is what rejects a concurrent writer.
func (u *GormUoW) WithinContractTx(ctx context.Context, id uint64, fn func(r uow.Repos, c *contract.Contract) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		c, err := r.Contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return fn(r, c)
	})
}

func (u *GormUoW) WithinNoteTx(ctx context.Context, id uint64, fn func(r uow.Repos, n *note.Note) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		n, err := r.Notes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return fn(r, n)
	})
}
