package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	ListSuppliers(ctx context.Context, activeOnly bool) ([]*Supplier, error)

	CreateOrder(ctx context.Context, o *Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	ListOrders(ctx context.Context, limit, offset int) ([]*Order, int, error)
	// ListOrdersInWindow fetches orders with their items for the
	// inclusive [start, end] date window.
	ListOrdersInWindow(ctx context.Context, start, end time.Time) ([]*Order, error)
}
