package activity

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, e *FeedEntry) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*FeedEntry, int, error)
}
