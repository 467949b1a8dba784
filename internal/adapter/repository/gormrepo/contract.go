package gormrepo

import (
	"context"
	"fmt"

	"auto-loan-contracts/internal/domain/apperr"
	contractDomain "auto-loan-contracts/internal/domain/contract"
	"auto-loan-contracts/internal/domain/occ"

	"gorm.io/gorm"
)

// sortable maps listing sort keys to columns.
var sortable = map[string]string{
	"id":             "id",
	"application_id": "application_id",
	"generated_at":   "generated_at",
	"signed_at":      "signed_at",
	"status":         "status",
}

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

func (r *ContractRepository) Create(ctx context.Context, c *contractDomain.Contract) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: application %d", apperr.ErrDuplicateContract, c.ApplicationID)
	}
	return err
}

func (r *ContractRepository) Save(ctx context.Context, c *contractDomain.Contract, expectedVersion int64) error {
	res := r.db.WithContext(ctx).
		Model(&contractDomain.Contract{}).
		Where("id = ? AND version = ?", c.ID, expectedVersion).
		Updates(map[string]any{
			"application_id":    c.ApplicationID,
			"signed_at":         c.SignedAt,
			"status":            c.Status,
			"special_condition": c.SpecialCondition,
			"version":           c.Version,
		})
	if isUniqueViolation(res.Error) {
		return fmt.Errorf("%w: application %d", apperr.ErrDuplicateContract, c.ApplicationID)
	}
	if res.Error != nil {
		return res.Error
	}
	return occ.Check(res.RowsAffected)
}

func (r *ContractRepository) GetByID(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *ContractRepository) GetByApplicationID(ctx context.Context, applicationID int64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	if err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error; err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *ContractRepository) ExistsByApplicationID(ctx context.Context, applicationID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&contractDomain.Contract{}).
		Where("application_id = ?", applicationID).
		Count(&n).Error
	return n > 0, err
}

func (r *ContractRepository) CountByStatus(ctx context.Context, status contractDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&contractDomain.Contract{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *ContractRepository) List(ctx context.Context, f contractDomain.ListFilter, p contractDomain.Page) ([]contractDomain.Contract, int64, error) {
	q := r.db.WithContext(ctx).Model(&contractDomain.Contract{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortable[p.SortBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if p.Desc {
		dir = "DESC"
	}

	var out []contractDomain.Contract
	err := q.Order(col + " " + dir).
		Order("id " + dir).
		Limit(p.Size).
		Offset(p.Number * p.Size).
		Find(&out).Error
	return out, total, err
}

func (r *ContractRepository) DeleteByID(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&contractDomain.Contract{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
