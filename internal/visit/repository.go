package visit

import "context"

// Repository defines the storage interface for the roster.
type Repository interface {
	// LoadRoster returns every staff row with its visits, in display order.
	LoadRoster(ctx context.Context) ([]*StaffRow, error)

	// SaveRoster replaces the stored roster with rows.
	SaveRoster(ctx context.Context, rows []*StaffRow) error

	// RecordMove applies a committed move and appends it to the move log.
	// Returns ErrVisitNotFound or ErrRowNotFound if either side is missing.
	RecordMove(ctx context.Context, m Move) error

	// ListMoves returns the most recent moves, newest first.
	ListMoves(ctx context.Context, limit int) ([]Move, error)

	// Close releases any resources held by the repository.
	Close() error
}
