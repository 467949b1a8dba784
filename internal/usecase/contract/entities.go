package contract

import (
	"time"

	domain "auto-loan-contracts/internal/domain/contract"
)

type CreateInput struct {
	ApplicationID    int64  `json:"application_id"`
	SpecialCondition string `json:"special_condition"`
}

// FullUpdateInput leaves nil fields untouched.
type FullUpdateInput struct {
	ApplicationID    *int64
	SpecialCondition *string
	SignedAt         *time.Time
	Status           *domain.Status
}

type ListInput struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string // asc | desc
	Status  *domain.Status
}

type ContractDTO struct {
	ID               uint64     `json:"id"`
	ApplicationID    int64      `json:"application_id"`
	DocumentPath     string     `json:"document_path"`
	GeneratedAt      time.Time  `json:"generated_at"`
	SignedAt         *time.Time `json:"signed_at,omitempty"`
	Status           string     `json:"status"`
	SpecialCondition string     `json:"special_condition"`
	Version          int64      `json:"version"`
}

type PageDTO struct {
	Items      []ContractDTO `json:"items"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

func toDTO(c *domain.Contract) *ContractDTO {
	return &ContractDTO{
		ID:               c.ID,
		ApplicationID:    c.ApplicationID,
		DocumentPath:     c.DocumentPath,
		GeneratedAt:      c.GeneratedAt,
		SignedAt:         c.SignedAt,
		Status:           string(c.Status),
		SpecialCondition: c.SpecialCondition,
		Version:          c.Version,
	}
}
