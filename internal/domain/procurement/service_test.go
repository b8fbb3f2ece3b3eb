package procurement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type mockRepo struct {
	suppliers []*Supplier
	orders    map[uuid.UUID]*Order
	windowErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{orders: make(map[uuid.UUID]*Order)}
}

func (m *mockRepo) CreateSupplier(_ context.Context, s *Supplier) error {
	s.ID = uuid.New()
	m.suppliers = append(m.suppliers, s)
	return nil
}

func (m *mockRepo) ListSuppliers(_ context.Context, activeOnly bool) ([]*Supplier, error) {
	var out []*Supplier
	for _, s := range m.suppliers {
		if !activeOnly || s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateOrder(_ context.Context, o *Order) error {
	o.ID = uuid.New()
	m.orders[o.ID] = o
	return nil
}

func (m *mockRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (m *mockRepo) UpdateOrderStatus(_ context.Context, id uuid.UUID, status OrderStatus) error {
	o, ok := m.orders[id]
	if !ok {
		return errors.New("not found")
	}
	o.Status = status
	return nil
}

func (m *mockRepo) ListOrders(_ context.Context, _, _ int) ([]*Order, int, error) {
	var out []*Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListOrdersInWindow(_ context.Context, start, end time.Time) ([]*Order, error) {
	if m.windowErr != nil {
		return nil, m.windowErr
	}
	var out []*Order
	for _, o := range m.orders {
		if !o.OrderDate.Before(start) && !o.OrderDate.After(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestCreateOrder_RecomputesTotals(t *testing.T) {
	svc := NewService(newMockRepo(), zerolog.Nop(), nil)
	o := &Order{
		SupplierID:   uuid.New(),
		SupplierName: "Acme Medical",
		TotalAmount:  9999, // client-supplied total is ignored
		Items: []*OrderItem{
			{Category: "consumables", Quantity: 4, UnitCost: 2.5, Subtotal: 123},
			{Category: "equipment", Quantity: 1, UnitCost: 80},
		},
	}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatal(err)
	}
	if o.Items[0].Subtotal != 10 || o.Items[1].Subtotal != 80 {
		t.Errorf("subtotals not recomputed: %v %v", o.Items[0].Subtotal, o.Items[1].Subtotal)
	}
	if o.TotalAmount != 90 {
		t.Errorf("total: got %v want 90", o.TotalAmount)
	}
	if o.Status != OrderPending {
		t.Errorf("status should default to pending, got %s", o.Status)
	}
}

func TestCreateOrder_SupplierRequired(t *testing.T) {
	svc := NewService(newMockRepo(), zerolog.Nop(), nil)
	err := svc.CreateOrder(context.Background(), &Order{SupplierName: "Acme"})
	if err == nil {
		t.Fatal("expected error for missing supplier_id")
	}
}

func TestCreateOrder_NegativeItemRejected(t *testing.T) {
	svc := NewService(newMockRepo(), zerolog.Nop(), nil)
	o := &Order{
		SupplierID:   uuid.New(),
		SupplierName: "Acme",
		Items:        []*OrderItem{{Category: "c", Quantity: -1, UnitCost: 5}},
	}
	if err := svc.CreateOrder(context.Background(), o); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestAnalytics_WindowFiltering(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, zerolog.Nop(), nil)
	in := order("Acme", OrderDelivered, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC), item("c", 1, 100))
	out := order("Acme", OrderDelivered, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), item("c", 1, 999))
	repo.orders[in.ID] = in
	repo.orders[out.ID] = out

	s, err := svc.Analytics(context.Background(),
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if s.OrderCount != 1 || s.TotalSpend != 100 {
		t.Errorf("window not applied: count=%d spend=%v", s.OrderCount, s.TotalSpend)
	}
}

func TestAnalytics_FetchErrorPropagates(t *testing.T) {
	repo := newMockRepo()
	repo.windowErr = errors.New("connection refused")
	svc := NewService(repo, zerolog.Nop(), nil)

	_, err := svc.Analytics(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())
	if err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}

func TestAnalytics_InvalidWindow(t *testing.T) {
	svc := NewService(newMockRepo(), zerolog.Nop(), nil)
	_, err := svc.Analytics(context.Background(), time.Now(), time.Now().AddDate(0, 0, -1))
	if err == nil {
		t.Fatal("expected error when end precedes start")
	}
}
