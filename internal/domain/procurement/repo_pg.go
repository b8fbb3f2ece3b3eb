package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *repoPG) CreateSupplier(ctx context.Context, s *Supplier) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO supplier (id, name, active) VALUES ($1,$2,$3)`,
		s.ID, s.Name, s.Active)
	return err
}

func (r *repoPG) ListSuppliers(ctx context.Context, activeOnly bool) ([]*Supplier, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, active, created_at, updated_at FROM supplier
		WHERE NOT $1 OR active ORDER BY name`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}

const orderCols = `id, supplier_id, supplier_name, status, order_date, total_amount, created_at, updated_at`

func (r *repoPG) CreateOrder(ctx context.Context, o *Order) error {
	o.ID = uuid.New()
	q := r.conn(ctx)
	_, err := q.Exec(ctx, `
		INSERT INTO procurement_order (id, supplier_id, supplier_name, status, order_date, total_amount)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.SupplierID, o.SupplierName, o.Status, o.OrderDate, o.TotalAmount,
	)
	if err != nil {
		return err
	}
	for _, it := range o.Items {
		it.ID = uuid.New()
		it.OrderID = o.ID
		if _, err := q.Exec(ctx, `
			INSERT INTO order_item (id, order_id, category, description, quantity, unit_cost, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			it.ID, it.OrderID, it.Category, it.Description, it.Quantity, it.UnitCost, it.Subtotal,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+orderCols+` FROM procurement_order WHERE id = $1`, id).Scan(
		&o.ID, &o.SupplierID, &o.SupplierName, &o.Status, &o.OrderDate,
		&o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	items, err := r.itemsForOrders(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *repoPG) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE procurement_order SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	return err
}

func (r *repoPG) ListOrders(ctx context.Context, limit, offset int) ([]*Order, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM procurement_order`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+orderCols+` FROM procurement_order ORDER BY order_date DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repoPG) ListOrdersInWindow(ctx context.Context, start, end time.Time) ([]*Order, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+orderCols+` FROM procurement_order
		WHERE order_date >= $1 AND order_date <= $2
		ORDER BY order_date`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, len(orders))
	byID := make(map[uuid.UUID]*Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}
	items, err := r.itemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, its := range items {
		byID[id].Items = its
	}
	return orders, nil
}

func (r *repoPG) itemsForOrders(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*OrderItem, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, order_id, category, description, quantity, unit_cost, subtotal
		FROM order_item WHERE order_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]*OrderItem)
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Category, &it.Description,
			&it.Quantity, &it.UnitCost, &it.Subtotal); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], &it)
	}
	return out, rows.Err()
}

func collectOrders(rows pgx.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.SupplierID, &o.SupplierName, &o.Status, &o.OrderDate,
			&o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}
