package procurement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var validOrderStatuses = map[OrderStatus]bool{
	OrderPending:   true,
	OrderApproved:  true,
	OrderDelivered: true,
	OrderCancelled: true,
}

// TxRunner runs fn inside a database transaction. Nil means no
// transaction wrapping, which the tests use.
type TxRunner func(ctx context.Context, fn func(context.Context) error) error

type Service struct {
	repo Repository
	log  zerolog.Logger
	tx   TxRunner
}

func NewService(repo Repository, log zerolog.Logger, tx TxRunner) *Service {
	return &Service{repo: repo, log: log, tx: tx}
}

func (s *Service) CreateSupplier(ctx context.Context, sup *Supplier) error {
	if strings.TrimSpace(sup.Name) == "" {
		return fmt.Errorf("name is required")
	}
	sup.Active = true
	return s.repo.CreateSupplier(ctx, sup)
}

func (s *Service) ListSuppliers(ctx context.Context, activeOnly bool) ([]*Supplier, error) {
	return s.repo.ListSuppliers(ctx, activeOnly)
}

// CreateOrder validates and stores an order. Item subtotals and the
// order total are recomputed server-side.
func (s *Service) CreateOrder(ctx context.Context, o *Order) error {
	if o.SupplierID == uuid.Nil {
		return fmt.Errorf("supplier_id is required")
	}
	if strings.TrimSpace(o.SupplierName) == "" {
		return fmt.Errorf("supplier_name is required")
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	if !validOrderStatuses[o.Status] {
		return fmt.Errorf("status must be one of: pending, approved, delivered, cancelled")
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	o.TotalAmount = 0
	for _, it := range o.Items {
		if it.Quantity < 0 || it.UnitCost < 0 {
			return fmt.Errorf("item quantity and unit_cost must not be negative")
		}
		it.Subtotal = it.Quantity * it.UnitCost
		o.TotalAmount += it.Subtotal
	}
	// Order header and items land together or not at all.
	if s.tx != nil {
		return s.tx(ctx, func(ctx context.Context) error {
			return s.repo.CreateOrder(ctx, o)
		})
	}
	return s.repo.CreateOrder(ctx, o)
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error {
	if !validOrderStatuses[status] {
		return fmt.Errorf("status must be one of: pending, approved, delivered, cancelled")
	}
	if _, err := s.repo.GetOrderByID(ctx, id); err != nil {
		return fmt.Errorf("order not found: %w", err)
	}
	return s.repo.UpdateOrderStatus(ctx, id, status)
}

func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]*Order, int, error) {
	return s.repo.ListOrders(ctx, limit, offset)
}

// Analytics rolls up the inclusive [start, end] window. A fetch error
// propagates; there is no partial aggregate.
func (s *Service) Analytics(ctx context.Context, start, end time.Time) (*Summary, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end must not be before start")
	}
	orders, err := s.repo.ListOrdersInWindow(ctx, start, end)
	if err != nil {
		s.log.Error().Err(err).
			Time("start", start).Time("end", end).
			Msg("procurement analytics fetch failed")
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return Rollup(orders), nil
}
