package queue

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// UpdateSessionData writes the snapshot only while the entry is not
	// archived. Returns the number of rows affected so callers can detect
	// a concurrent archive.
	UpdateSessionData(ctx context.Context, id uuid.UUID, data json.RawMessage) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Entry, int, error)
}
