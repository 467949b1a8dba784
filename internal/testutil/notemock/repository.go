package notemock

import (
	"context"

	domain "auto-loan-contracts/internal/domain/note"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                         func(ctx context.Context, n *domain.Note) error
	SaveFn                           func(ctx context.Context, n *domain.Note, expectedVersion int64) error
	GetByIDFn                        func(ctx context.Context, id uint64) (*domain.Note, error)
	ListByApplicationIDFn            func(ctx context.Context, applicationID int64) ([]domain.Note, error)
	GetByApplicationAndInstallmentFn func(ctx context.Context, applicationID int64, installment int) (*domain.Note, error)
	ExistsByApplicationIDFn          func(ctx context.Context, applicationID int64) (bool, error)
	DeleteByApplicationIDFn          func(ctx context.Context, applicationID int64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, n *domain.Note) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, n *domain.Note, expectedVersion int64) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, n, expectedVersion)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Note, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByApplicationID(ctx context.Context, applicationID int64) ([]domain.Note, error) {
	if m.ListByApplicationIDFn != nil {
		return m.ListByApplicationIDFn(ctx, applicationID)
	}
	return nil, nil
}

func (m *Repo) GetByApplicationAndInstallment(ctx context.Context, applicationID int64, installment int) (*domain.Note, error) {
	if m.GetByApplicationAndInstallmentFn != nil {
		return m.GetByApplicationAndInstallmentFn(ctx, applicationID, installment)
	}
	return nil, context.Canceled
}

func (m *Repo) ExistsByApplicationID(ctx context.Context, applicationID int64) (bool, error) {
	if m.ExistsByApplicationIDFn != nil {
		return m.ExistsByApplicationIDFn(ctx, applicationID)
	}
	return false, nil
}

func (m *Repo) DeleteByApplicationID(ctx context.Context, applicationID int64) (int64, error) {
	if m.DeleteByApplicationIDFn != nil {
		return m.DeleteByApplicationIDFn(ctx, applicationID)
	}
	return 0, nil
}
