package note

import "context"

type Repository interface {
	// Create inserts n; a taken (application, installment) pair is ErrDuplicateSchedule.
	Create(ctx context.Context, n *Note) error
	// Save writes n only if the stored version still equals expectedVersion.
	Save(ctx context.Context, n *Note, expectedVersion int64) error

	GetByID(ctx context.Context, id uint64) (*Note, error)
	// ListByApplicationID returns notes ordered by installment number.
	ListByApplicationID(ctx context.Context, applicationID int64) ([]Note, error)
	GetByApplicationAndInstallment(ctx context.Context, applicationID int64, installment int) (*Note, error)
	ExistsByApplicationID(ctx context.Context, applicationID int64) (bool, error)

	// DeleteByApplicationID physically removes every note of the application.
	DeleteByApplicationID(ctx context.Context, applicationID int64) (int64, error)
}
