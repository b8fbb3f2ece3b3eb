package procurement

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func order(supplier string, status OrderStatus, date time.Time, items ...*OrderItem) *Order {
	o := &Order{
		ID:           uuid.New(),
		SupplierID:   uuid.New(),
		SupplierName: supplier,
		Status:       status,
		OrderDate:    date,
		Items:        items,
	}
	for _, it := range items {
		it.Subtotal = it.Quantity * it.UnitCost
		o.TotalAmount += it.Subtotal
	}
	return o
}

func item(category string, qty, cost float64) *OrderItem {
	return &OrderItem{Category: category, Quantity: qty, UnitCost: cost}
}

func TestRollup_Empty(t *testing.T) {
	s := Rollup(nil)
	if s.TotalSpend != 0 || s.OrderCount != 0 || s.AverageOrderValue != 0 {
		t.Errorf("empty input should yield zero totals: %+v", s)
	}
	if len(s.TopSuppliers) != 0 || len(s.Categories) != 0 || len(s.MonthlyTrend) != 0 {
		t.Error("empty input should yield empty groupings")
	}
}

func TestRollup_ZeroSpendNoDivisionByZero(t *testing.T) {
	orders := []*Order{
		order("Acme", OrderPending, time.Now(), item("consumables", 0, 0)),
	}
	s := Rollup(orders)
	if s.TotalSpend != 0 {
		t.Fatalf("expected zero spend, got %v", s.TotalSpend)
	}
	for _, sup := range s.TopSuppliers {
		if sup.Percentage != 0 {
			t.Errorf("supplier percentage should be 0 at zero spend, got %v", sup.Percentage)
		}
	}
	for _, c := range s.Categories {
		if c.Percentage != 0 {
			t.Errorf("category percentage should be 0 at zero spend, got %v", c.Percentage)
		}
	}
}

func TestRollup_Totals(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	orders := []*Order{
		order("Acme", OrderDelivered, jan, item("consumables", 10, 5)),  // 50
		order("Medix", OrderApproved, jan, item("equipment", 1, 150)),   // 150
	}
	s := Rollup(orders)
	if s.TotalSpend != 200 {
		t.Errorf("total spend: got %v want 200", s.TotalSpend)
	}
	if s.OrderCount != 2 {
		t.Errorf("order count: got %d want 2", s.OrderCount)
	}
	if s.AverageOrderValue != 100 {
		t.Errorf("average: got %v want 100", s.AverageOrderValue)
	}
}

func TestRollup_TopSuppliersOrderedAndTruncated(t *testing.T) {
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	var orders []*Order
	for i := 0; i < 12; i++ {
		name := string(rune('A' + i))
		orders = append(orders, order(name, OrderDelivered, date,
			item("consumables", 1, float64(i+1)*10)))
	}
	s := Rollup(orders)
	if len(s.TopSuppliers) != 10 {
		t.Fatalf("expected 10 suppliers, got %d", len(s.TopSuppliers))
	}
	for i := 1; i < len(s.TopSuppliers); i++ {
		if s.TopSuppliers[i].Spend > s.TopSuppliers[i-1].Spend {
			t.Error("suppliers not ordered by spend descending")
		}
	}
	if s.TopSuppliers[0].SupplierName != "L" {
		t.Errorf("biggest spender should rank first, got %s", s.TopSuppliers[0].SupplierName)
	}
}

func TestRollup_CategoryPercentagesSumTo100(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	orders := []*Order{
		order("Acme", OrderDelivered, date,
			item("consumables", 3, 7), item("equipment", 1, 120)),
		order("Medix", OrderDelivered, date,
			item("pharmaceuticals", 10, 4.5), item("consumables", 2, 9)),
	}
	s := Rollup(orders)
	var sum float64
	for _, c := range s.Categories {
		sum += c.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("category percentages sum to %v, want 100", sum)
	}
}

func TestRollup_MonthlyTrendAscending(t *testing.T) {
	orders := []*Order{
		order("Acme", OrderDelivered, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), item("c", 1, 30)),
		order("Acme", OrderDelivered, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), item("c", 1, 10)),
		order("Acme", OrderDelivered, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), item("c", 1, 10)),
		order("Acme", OrderDelivered, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), item("c", 1, 5)),
	}
	s := Rollup(orders)
	want := []string{"2025-12", "2026-01", "2026-03"}
	if len(s.MonthlyTrend) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(s.MonthlyTrend))
	}
	for i, m := range s.MonthlyTrend {
		if m.Month != want[i] {
			t.Errorf("month %d: got %s want %s", i, m.Month, want[i])
		}
	}
	if s.MonthlyTrend[1].Spend != 20 || s.MonthlyTrend[1].OrderCount != 2 {
		t.Errorf("2026-01 should aggregate both orders: %+v", s.MonthlyTrend[1])
	}
}

func TestRollup_StatusCounts(t *testing.T) {
	date := time.Now()
	orders := []*Order{
		order("A", OrderPending, date),
		order("A", OrderPending, date),
		order("B", OrderDelivered, date),
		order("C", OrderCancelled, date),
	}
	s := Rollup(orders)
	if s.StatusCounts["pending"] != 2 || s.StatusCounts["delivered"] != 1 || s.StatusCounts["cancelled"] != 1 {
		t.Errorf("unexpected status counts: %v", s.StatusCounts)
	}
}
