package procurement

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Supplier maps to the supplier table.
type Supplier struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Order maps to the procurement_order table. SupplierName is
// denormalized so analytics survive supplier renames.
type Order struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	SupplierID   uuid.UUID    `db:"supplier_id" json:"supplier_id"`
	SupplierName string       `db:"supplier_name" json:"supplier_name"`
	Status       OrderStatus  `db:"status" json:"status"`
	OrderDate    time.Time    `db:"order_date" json:"order_date"`
	TotalAmount  float64      `db:"total_amount" json:"total_amount"`
	Items        []*OrderItem `db:"-" json:"items,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// OrderItem maps to the order_item table.
type OrderItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OrderID     uuid.UUID `db:"order_id" json:"order_id"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	Quantity    float64   `db:"quantity" json:"quantity"`
	UnitCost    float64   `db:"unit_cost" json:"unit_cost"`
	Subtotal    float64   `db:"subtotal" json:"subtotal"`
}
