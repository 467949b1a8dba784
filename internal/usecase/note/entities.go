package note

import (
	"time"

	domain "auto-loan-contracts/internal/domain/note"

	"github.com/shopspring/decimal"
)

type GenerateInput struct {
	ApplicationID int64
	Principal     decimal.Decimal
	AnnualRate    decimal.Decimal // percent, e.g. 12 for 12%
	TermMonths    int
}

type PreviewInput struct {
	Principal  decimal.Decimal
	AnnualRate decimal.Decimal
	TermMonths int
}

// UpdateInput carries the only two fields of a note that may change.
type UpdateInput struct {
	ID                uint64
	InstallmentNumber int
	DocumentPath      string
}

type NoteDTO struct {
	ID                uint64    `json:"id"`
	ApplicationID     int64     `json:"application_id"`
	InstallmentNumber int       `json:"installment_number"`
	DocumentPath      string    `json:"document_path"`
	GeneratedAt       time.Time `json:"generated_at"`
	Active            bool      `json:"active"`
	Version           int64     `json:"version"`
}

func toDTO(n *domain.Note) NoteDTO {
	return NoteDTO{
		ID:                n.ID,
		ApplicationID:     n.ApplicationID,
		InstallmentNumber: n.InstallmentNumber,
		DocumentPath:      n.DocumentPath,
		GeneratedAt:       n.GeneratedAt,
		Active:            n.Active,
		Version:           n.Version,
	}
}
