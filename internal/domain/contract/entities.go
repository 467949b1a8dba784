package contract

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"auto-loan-contracts/internal/domain/occ"
)

const (
	MaxSpecialConditionLen = 120

	cancelledMarker = "CANCELLED: "
	deletedMarker   = "DELETED: "
)

// Table: contracts
type Contract struct {
	ID               uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ApplicationID    int64      `gorm:"column:application_id;not null;uniqueIndex:ux_contracts_application_id" json:"application_id"`
	DocumentPath     string     `gorm:"column:document_path;size:150;not null" json:"document_path"`
	GeneratedAt      time.Time  `gorm:"column:generated_at;not null" json:"generated_at"`
	SignedAt         *time.Time `gorm:"column:signed_at" json:"signed_at"`
	Status           Status     `gorm:"column:status;size:20;not null;index:idx_contracts_status" json:"status"`
	SpecialCondition string     `gorm:"column:special_condition;size:120" json:"special_condition"`
	Version          int64      `gorm:"column:version;not null" json:"version"`
}

func (Contract) TableName() string { return "contracts" }

// New builds a DRAFT contract for applicationID. Timestamps and version are
// stamped here rather than by persistence hooks.
func New(applicationID int64, specialCondition string, now time.Time) *Contract {
	return &Contract{
		ApplicationID:    applicationID,
		DocumentPath:     DocumentPath(applicationID),
		GeneratedAt:      now.UTC(),
		Status:           StatusDraft,
		SpecialCondition: normalizeCondition(specialCondition),
		Version:          occ.InitialVersion,
	}
}

// DocumentPath is the deterministic location of the contract document.
func DocumentPath(applicationID int64) string {
	return fmt.Sprintf("/contracts/generated/contract_%d.pdf", applicationID)
}

func normalizeCondition(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= MaxSpecialConditionLen {
		return s
	}
	return string([]rune(s)[:MaxSpecialConditionLen])
}
