package contractmock

import (
	"context"

	domain "auto-loan-contracts/internal/domain/contract"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset functions return zero values and context.Canceled for lookups.
type Repo struct {
	CreateFn                func(ctx context.Context, c *domain.Contract) error
	SaveFn                  func(ctx context.Context, c *domain.Contract, expectedVersion int64) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Contract, error)
	GetByApplicationIDFn    func(ctx context.Context, applicationID int64) (*domain.Contract, error)
	ExistsByApplicationIDFn func(ctx context.Context, applicationID int64) (bool, error)
	CountByStatusFn         func(ctx context.Context, status domain.Status) (int64, error)
	ListFn                  func(ctx context.Context, f domain.ListFilter, p domain.Page) ([]domain.Contract, int64, error)
	DeleteByIDFn            func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Contract) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Contract, expectedVersion int64) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c, expectedVersion)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Contract, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID int64) (*domain.Contract, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) ExistsByApplicationID(ctx context.Context, applicationID int64) (bool, error) {
	if m.ExistsByApplicationIDFn != nil {
		return m.ExistsByApplicationIDFn(ctx, applicationID)
	}
	return false, nil
}

func (m *Repo) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter, p domain.Page) ([]domain.Contract, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f, p)
	}
	return nil, 0, nil
}

func (m *Repo) DeleteByID(ctx context.Context, id uint64) error {
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(ctx, id)
	}
	return nil
}
