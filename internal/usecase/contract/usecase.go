package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auto-loan-contracts/internal/domain/apperr"
	domain "auto-loan-contracts/internal/domain/contract"
	"auto-loan-contracts/internal/domain/occ"
	"auto-loan-contracts/internal/domain/uow"
	"auto-loan-contracts/internal/platform/logger"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	now  func() time.Time
	log  *logger.Logger
}

// NewUsecase: reads go through repo, mutations through the UoW.
func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, log *logger.Logger) *Usecase {
	return &Usecase{repo: repo, uow: tx, now: time.Now, log: logger.OrNop(log).With("component", "contract")}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ContractDTO, error) {
	var c *domain.Contract
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		taken, err := r.Contracts.ExistsByApplicationID(ctx, in.ApplicationID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: application %d", apperr.ErrDuplicateContract, in.ApplicationID)
		}
		c = domain.New(in.ApplicationID, in.SpecialCondition, u.now())
		return r.Contracts.Create(ctx, c)
	})
	if err != nil {
		u.log.Warn("create contract failed", "application_id", in.ApplicationID, "err", err)
		return nil, err
	}
	u.log.Info("contract created", "contract_id", c.ID, "application_id", c.ApplicationID)
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ContractDTO, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) GetByApplication(ctx context.Context, applicationID int64) (*ContractDTO, error) {
	c, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*PageDTO, error) {
	page := domain.Page{
		Number: in.Page,
		Size:   in.Size,
		SortBy: in.SortBy,
		Desc:   strings.EqualFold(in.SortDir, "desc"),
	}
	if page.Number < 0 {
		page.Number = 0
	}
	if page.Size <= 0 {
		page.Size = DefaultPageSize
	}
	if page.Size > MaxPageSize {
		page.Size = MaxPageSize
	}

	rows, total, err := u.repo.List(ctx, domain.ListFilter{Status: in.Status}, page)
	if err != nil {
		return nil, err
	}
	out := &PageDTO{
		Items:      make([]ContractDTO, 0, len(rows)),
		Page:       page.Number,
		Size:       page.Size,
		Total:      total,
		TotalPages: int((total + int64(page.Size) - 1) / int64(page.Size)),
	}
	for i := range rows {
		out.Items = append(out.Items, *toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	return u.repo.CountByStatus(ctx, status)
}

// StatusStats counts contracts in every lifecycle status, zeros included.
func (u *Usecase) StatusStats(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(domain.Statuses))
	for _, s := range domain.Statuses {
		n, err := u.repo.CountByStatus(ctx, s)
		if err != nil {
			return nil, err
		}
		out[string(s)] = n
	}
	return out, nil
}

func (u *Usecase) Sign(ctx context.Context, id uint64) (*ContractDTO, error) {
	return u.mutate(ctx, id, "sign", func(_ uow.Repos, c *domain.Contract) error {
		return c.Sign(u.now())
	})
}

func (u *Usecase) Cancel(ctx context.Context, id uint64, reason string) (*ContractDTO, error) {
	return u.mutate(ctx, id, "cancel", func(_ uow.Repos, c *domain.Contract) error {
		return c.Cancel(reason)
	})
}

func (u *Usecase) UpdateSpecialCondition(ctx context.Context, id uint64, condition string) (*ContractDTO, error) {
	return u.mutate(ctx, id, "update condition", func(_ uow.Repos, c *domain.Contract) error {
		return c.SetSpecialCondition(condition)
	})
}

func (u *Usecase) FullUpdate(ctx context.Context, id uint64, in FullUpdateInput) (*ContractDTO, error) {
	return u.mutate(ctx, id, "full update", func(r uow.Repos, c *domain.Contract) error {
		if in.ApplicationID != nil && *in.ApplicationID != c.ApplicationID {
			taken, err := r.Contracts.ExistsByApplicationID(ctx, *in.ApplicationID)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: application %d", apperr.ErrDuplicateContract, *in.ApplicationID)
			}
		}
		return c.ApplyPatch(domain.Patch{
			ApplicationID:    in.ApplicationID,
			SpecialCondition: in.SpecialCondition,
			SignedAt:         in.SignedAt,
			Status:           in.Status,
		}, u.now())
	})
}

// LogicalDelete cancels the contract and records the reason as a deletion.
func (u *Usecase) LogicalDelete(ctx context.Context, id uint64, reason string) (*ContractDTO, error) {
	return u.mutate(ctx, id, "logical delete", func(_ uow.Repos, c *domain.Contract) error {
		return c.MarkDeleted(reason)
	})
}

// PhysicalDeleteByApplication removes the row; promissory notes are untouched.
func (u *Usecase) PhysicalDeleteByApplication(ctx context.Context, applicationID int64) error {
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByApplicationID(ctx, applicationID)
		if err != nil {
			return err
		}
		return r.Contracts.DeleteByID(ctx, c.ID)
	})
	if err != nil {
		u.log.Warn("physical delete failed", "application_id", applicationID, "err", err)
		return err
	}
	u.log.Info("contract deleted", "application_id", applicationID)
	return nil
}

// mutate loads the contract, applies fn and saves it against the version read.
func (u *Usecase) mutate(ctx context.Context, id uint64, op string, fn func(r uow.Repos, c *domain.Contract) error) (*ContractDTO, error) {
	var out *domain.Contract
	err := u.uow.WithinContractTx(ctx, id, func(r uow.Repos, c *domain.Contract) error {
		from := c.Status
		expected := occ.Stamp(&c.Version)
		if err := fn(r, c); err != nil {
			return err
		}
		if err := r.Contracts.Save(ctx, c, expected); err != nil {
			return err
		}
		if from != c.Status {
			u.log.Info("contract transition", "contract_id", c.ID, "from", from, "to", c.Status)
		}
		out = c
		return nil
	})
	if err != nil {
		u.log.Warn(op+" failed", "contract_id", id, "err", err)
		return nil, err
	}
	return toDTO(out), nil
}
