package contract

import "context"

// Page selects one slice of a sorted listing. Number is zero-based.
type Page struct {
	Number int
	Size   int
	SortBy string
	Desc   bool
}

type ListFilter struct {
	Status *Status
}

type Repository interface {
	// Create inserts c; a taken application id is ErrDuplicateContract.
	Create(ctx context.Context, c *Contract) error
	// Save writes c only if the stored version still equals expectedVersion.
	Save(ctx context.Context, c *Contract, expectedVersion int64) error

	GetByID(ctx context.Context, id uint64) (*Contract, error)
	GetByApplicationID(ctx context.Context, applicationID int64) (*Contract, error)
	ExistsByApplicationID(ctx context.Context, applicationID int64) (bool, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	List(ctx context.Context, f ListFilter, p Page) ([]Contract, int64, error)

	DeleteByID(ctx context.Context, id uint64) error
}
