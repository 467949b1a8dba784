package note

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auto-loan-contracts/internal/domain/apperr"
	domain "auto-loan-contracts/internal/domain/note"
	"auto-loan-contracts/internal/domain/occ"
	"auto-loan-contracts/internal/domain/schedule"
	"auto-loan-contracts/internal/domain/uow"
	"auto-loan-contracts/internal/platform/logger"
)

// Locker serializes schedule generation per application. A held key must fail
// with ErrDuplicateSchedule.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

type Usecase struct {
	repo   domain.Repository
	uow    uow.UnitOfWork
	source schedule.Source
	locker Locker
	now    func() time.Time
	log    *logger.Logger
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, source schedule.Source, log *logger.Logger) *Usecase {
	return &Usecase{
		repo:   repo,
		uow:    tx,
		source: source,
		now:    time.Now,
		log:    logger.OrNop(log).With("component", "promissory_note"),
	}
}

// WithLocker enables per-application locking around Generate. Without it the
// existence check and the unique index are the only guards.
func (u *Usecase) WithLocker(l Locker) *Usecase {
	u.locker = l
	return u
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func lockKey(applicationID int64) string { return fmt.Sprintf("schedule:%d", applicationID) }

// Generate computes the amortization table and persists one active note per
// installment, all or nothing.
func (u *Usecase) Generate(ctx context.Context, in GenerateInput) ([]NoteDTO, error) {
	log := u.log.With("application_id", in.ApplicationID)

	if u.locker != nil {
		release, err := u.locker.Lock(ctx, lockKey(in.ApplicationID))
		if err != nil {
			log.Warn("schedule lock not acquired", "err", err)
			return nil, err
		}
		defer release()
	}

	now := u.now()
	var notes []*domain.Note
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		exists, err := r.Notes.ExistsByApplicationID(ctx, in.ApplicationID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: application %d", apperr.ErrDuplicateSchedule, in.ApplicationID)
		}

		rows, err := u.source.Schedule(ctx, schedule.Request{
			Principal:         in.Principal,
			AnnualRatePercent: in.AnnualRate,
			TermMonths:        in.TermMonths,
		})
		if err != nil {
			return err
		}

		notes = make([]*domain.Note, 0, len(rows))
		for i, row := range rows {
			n := domain.New(in.ApplicationID, row.Number, now)
			if err := r.Notes.Create(ctx, n); err != nil {
				if errors.Is(err, apperr.ErrDuplicateSchedule) {
					return err
				}
				return &apperr.ScheduleWriteError{
					ApplicationID: in.ApplicationID,
					Installment:   row.Number,
					Written:       i,
					Err:           err,
				}
			}
			notes = append(notes, n)
		}
		return nil
	})
	if err != nil {
		log.Warn("schedule not generated", "err", err)
		return nil, err
	}

	out := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, toDTO(n))
	}
	log.Info("schedule generated", "installments", len(out))
	return out, nil
}

// Preview computes the amortization table without persisting anything.
func (u *Usecase) Preview(ctx context.Context, in PreviewInput) ([]schedule.Installment, error) {
	return u.source.Schedule(ctx, schedule.Request{
		Principal:         in.Principal,
		AnnualRatePercent: in.AnnualRate,
		TermMonths:        in.TermMonths,
	})
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*NoteDTO, error) {
	n, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(n)
	return &dto, nil
}

func (u *Usecase) ListByApplication(ctx context.Context, applicationID int64) ([]NoteDTO, error) {
	rows, err := u.repo.ListByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	out := make([]NoteDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) GetByApplicationAndInstallment(ctx context.Context, applicationID int64, installment int) (*NoteDTO, error) {
	n, err := u.repo.GetByApplicationAndInstallment(ctx, applicationID, installment)
	if err != nil {
		return nil, err
	}
	dto := toDTO(n)
	return &dto, nil
}

// Update rewrites the installment number and document path of note id.
func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateInput) (*NoteDTO, error) {
	if in.ID != id {
		return nil, fmt.Errorf("%w: path %d, body %d", apperr.ErrIDMismatch, id, in.ID)
	}
	return u.mutate(ctx, id, "update", func(n *domain.Note) error {
		return n.Revise(in.InstallmentNumber, in.DocumentPath)
	})
}

func (u *Usecase) LogicalDelete(ctx context.Context, id uint64) (*NoteDTO, error) {
	return u.mutate(ctx, id, "deactivate", func(n *domain.Note) error {
		return n.Deactivate()
	})
}

func (u *Usecase) ExistsForApplication(ctx context.Context, applicationID int64) (bool, error) {
	return u.repo.ExistsByApplicationID(ctx, applicationID)
}

// DeleteAllForApplication physically removes the schedule and reports how
// many notes went away.
func (u *Usecase) DeleteAllForApplication(ctx context.Context, applicationID int64) (int64, error) {
	var removed int64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		removed, err = r.Notes.DeleteByApplicationID(ctx, applicationID)
		return err
	})
	if err != nil {
		u.log.Warn("delete schedule failed", "application_id", applicationID, "err", err)
		return 0, err
	}
	u.log.Info("schedule deleted", "application_id", applicationID, "removed", removed)
	return removed, nil
}

func (u *Usecase) mutate(ctx context.Context, id uint64, op string, fn func(n *domain.Note) error) (*NoteDTO, error) {
	var out *domain.Note
	err := u.uow.WithinNoteTx(ctx, id, func(r uow.Repos, n *domain.Note) error {
		expected := occ.Stamp(&n.Version)
		if err := fn(n); err != nil {
			return err
		}
		if err := r.Notes.Save(ctx, n, expected); err != nil {
			return err
		}
		out = n
		return nil
	})
	if err != nil {
		u.log.Warn(op+" note failed", "note_id", id, "err", err)
		return nil, err
	}
	u.log.Info("note "+op, "note_id", id, "version", out.Version)
	dto := toDTO(out)
	return &dto, nil
}
