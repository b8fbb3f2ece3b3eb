package catalog

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	Update(ctx context.Context, it *Item) error
	List(ctx context.Context, kind *ItemKind, activeOnly bool, limit, offset int) ([]*Item, int, error)
	// SearchByName returns active items of the given kind whose name
	// matches the term case-insensitively (exact or substring).
	SearchByName(ctx context.Context, kind ItemKind, term string) ([]*Item, error)
}
