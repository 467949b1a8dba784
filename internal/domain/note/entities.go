package note

import (
	"fmt"
	"time"

	"auto-loan-contracts/internal/domain/apperr"
	"auto-loan-contracts/internal/domain/occ"
)

const MaxDocumentPathLen = 200

// Table: promissory_notes
type Note struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID     int64     `gorm:"column:application_id;not null;uniqueIndex:ux_notes_application_installment,priority:1" json:"application_id"`
	InstallmentNumber int       `gorm:"column:installment_number;not null;uniqueIndex:ux_notes_application_installment,priority:2" json:"installment_number"`
	DocumentPath      string    `gorm:"column:document_path;size:200;not null" json:"document_path"`
	GeneratedAt       time.Time `gorm:"column:generated_at;not null" json:"generated_at"`
	Active            bool      `gorm:"column:active;not null;default:true" json:"active"`
	Version           int64     `gorm:"column:version;not null" json:"version"`
}

func (Note) TableName() string { return "promissory_notes" }

func New(applicationID int64, installment int, now time.Time) *Note {
	return &Note{
		ApplicationID:     applicationID,
		InstallmentNumber: installment,
		DocumentPath:      DocumentPath(applicationID, installment, now),
		GeneratedAt:       now.UTC(),
		Active:            true,
		Version:           occ.InitialVersion,
	}
}

// DocumentPath embeds the generation time so a retried run never reuses a path.
func DocumentPath(applicationID int64, installment int, at time.Time) string {
	return fmt.Sprintf("/promissory-notes/%d/note_%d_%d.pdf", applicationID, installment, at.UnixMilli())
}

// Revise replaces the installment number and document path.
func (n *Note) Revise(installment int, documentPath string) error {
	switch {
	case installment < 1:
		return fmt.Errorf("%w: installment number %d", apperr.ErrInvalidNote, installment)
	case documentPath == "":
		return fmt.Errorf("%w: empty document path", apperr.ErrInvalidNote)
	case len(documentPath) > MaxDocumentPathLen:
		return fmt.Errorf("%w: document path longer than %d", apperr.ErrInvalidNote, MaxDocumentPathLen)
	}
	n.InstallmentNumber = installment
	n.DocumentPath = documentPath
	return nil
}

// Deactivate is the logical delete.
func (n *Note) Deactivate() error {
	if !n.Active {
		return fmt.Errorf("%w: note %d", apperr.ErrAlreadyInactive, n.ID)
	}
	n.Active = false
	return nil
}
