package contract

import (
	"fmt"
	"strings"
	"time"

	"auto-loan-contracts/internal/domain/apperr"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSigned    Status = "SIGNED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusDraft, StatusSigned, StatusCancelled}

// transitions is the complete lifecycle. CANCELLED has no outgoing edge.
var transitions = map[Status]map[Status]bool{
	StatusDraft:     {StatusSigned: true, StatusCancelled: true},
	StatusSigned:    {StatusCancelled: true},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("unknown contract status %q", s)
	}
	return st, nil
}

func (c *Contract) moveTo(to Status) error {
	if !CanTransition(c.Status, to) {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, c.Status, to)
	}
	c.Status = to
	return nil
}

// Sign moves a DRAFT contract to SIGNED and stamps SignedAt.
func (c *Contract) Sign(now time.Time) error {
	if err := c.moveTo(StatusSigned); err != nil {
		return err
	}
	at := now.UTC()
	c.SignedAt = &at
	return nil
}

// Cancel moves the contract to CANCELLED. The reason overwrites whatever
// special condition was recorded before.
func (c *Contract) Cancel(reason string) error {
	if err := c.moveTo(StatusCancelled); err != nil {
		return err
	}
	c.SpecialCondition = normalizeCondition(cancelledMarker + strings.TrimSpace(reason))
	return nil
}

// MarkDeleted is the logical delete: a cancellation that reports an already
// cancelled contract as ErrAlreadyCancelled.
func (c *Contract) MarkDeleted(reason string) error {
	if c.Status == StatusCancelled {
		return apperr.ErrAlreadyCancelled
	}
	if err := c.moveTo(StatusCancelled); err != nil {
		return err
	}
	c.SpecialCondition = normalizeCondition(deletedMarker + strings.TrimSpace(reason))
	return nil
}

func (c *Contract) requireDraft(op string) error {
	if c.Status != StatusDraft {
		return fmt.Errorf("%w: %s requires %s, contract is %s", apperr.ErrInvalidTransition, op, StatusDraft, c.Status)
	}
	return nil
}

func (c *Contract) SetSpecialCondition(condition string) error {
	if err := c.requireDraft("update condition"); err != nil {
		return err
	}
	c.SpecialCondition = normalizeCondition(condition)
	return nil
}

// Patch is a full update request. Nil fields are left untouched.
type Patch struct {
	ApplicationID    *int64
	SpecialCondition *string
	SignedAt         *time.Time
	Status           *Status
}

// ApplyPatch applies p to a DRAFT contract. Checking that a new application id
// is free is the caller's job since it needs the store. A supplied SignedAt is
// only kept when the patch signs the contract.
func (c *Contract) ApplyPatch(p Patch, now time.Time) error {
	if err := c.requireDraft("full update"); err != nil {
		return err
	}
	to := c.Status
	if p.Status != nil {
		to = *p.Status
	}
	if to != StatusDraft && !CanTransition(c.Status, to) {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, c.Status, to)
	}

	if p.ApplicationID != nil {
		c.ApplicationID = *p.ApplicationID
	}
	if p.SpecialCondition != nil {
		c.SpecialCondition = normalizeCondition(*p.SpecialCondition)
	}
	c.Status = to
	if to == StatusSigned {
		at := now.UTC()
		if p.SignedAt != nil {
			at = p.SignedAt.UTC()
		}
		c.SignedAt = &at
	}
	return nil
}
