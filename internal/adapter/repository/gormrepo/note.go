package gormrepo

import (
	"context"
	"fmt"

	"auto-loan-contracts/internal/domain/apperr"
	noteDomain "auto-loan-contracts/internal/domain/note"
	"auto-loan-contracts/internal/domain/occ"

	"gorm.io/gorm"
)

type NoteRepository struct{ db *gorm.DB }

func NewNoteRepository(db *gorm.DB) *NoteRepository { return &NoteRepository{db: db} }

func (r *NoteRepository) Create(ctx context.Context, n *noteDomain.Note) error {
	err := r.db.WithContext(ctx).Create(n).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: application %d installment %d", apperr.ErrDuplicateSchedule, n.ApplicationID, n.InstallmentNumber)
	}
	return err
}

func (r *NoteRepository) Save(ctx context.Context, n *noteDomain.Note, expectedVersion int64) error {
	res := r.db.WithContext(ctx).
		Model(&noteDomain.Note{}).
		Where("id = ? AND version = ?", n.ID, expectedVersion).
		Updates(map[string]any{
			"installment_number": n.InstallmentNumber,
			"document_path":      n.DocumentPath,
			"active":             n.Active,
			"version":            n.Version,
		})
	if isUniqueViolation(res.Error) {
		return fmt.Errorf("%w: application %d installment %d", apperr.ErrDuplicateSchedule, n.ApplicationID, n.InstallmentNumber)
	}
	if res.Error != nil {
		return res.Error
	}
	return occ.Check(res.RowsAffected)
}

func (r *NoteRepository) GetByID(ctx context.Context, id uint64) (*noteDomain.Note, error) {
	var out noteDomain.Note
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *NoteRepository) ListByApplicationID(ctx context.Context, applicationID int64) ([]noteDomain.Note, error) {
	var out []noteDomain.Note
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("installment_number ASC").
		Find(&out).Error
	return out, err
}

func (r *NoteRepository) GetByApplicationAndInstallment(ctx context.Context, applicationID int64, installment int) (*noteDomain.Note, error) {
	var out noteDomain.Note
	err := r.db.WithContext(ctx).
		Where("application_id = ? AND installment_number = ?", applicationID, installment).
		First(&out).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (r *NoteRepository) ExistsByApplicationID(ctx context.Context, applicationID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&noteDomain.Note{}).
		Where("application_id = ?", applicationID).
		Count(&n).Error
	return n > 0, err
}

func (r *NoteRepository) DeleteByApplicationID(ctx context.Context, applicationID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Delete(&noteDomain.Note{})
	return res.RowsAffected, res.Error
}
