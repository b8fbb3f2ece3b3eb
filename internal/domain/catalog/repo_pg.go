package catalog

import (
	"context"

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

const itemCols = `id, kind, name, price_standard, price_member, price_staff, active, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, it *Item) error {
	it.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO catalog_item (id, kind, name, price_standard, price_member, price_staff, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		it.ID, it.Kind, it.Name, it.PriceStandard, it.PriceMember, it.PriceStaff, it.Active,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	return scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM catalog_item WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, it *Item) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE catalog_item SET
			kind=$2, name=$3, price_standard=$4, price_member=$5, price_staff=$6,
			active=$7, updated_at=NOW()
		WHERE id = $1`,
		it.ID, it.Kind, it.Name, it.PriceStandard, it.PriceMember, it.PriceStaff, it.Active,
	)
	return err
}

func (r *repoPG) List(ctx context.Context, kind *ItemKind, activeOnly bool, limit, offset int) ([]*Item, int, error) {
	where := `WHERE ($1::text IS NULL OR kind = $1) AND (NOT $2 OR active)`
	var kindArg interface{}
	if kind != nil {
		kindArg = string(*kind)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM catalog_item `+where, kindArg, activeOnly).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+itemCols+` FROM catalog_item `+where+` ORDER BY name LIMIT $3 OFFSET $4`,
		kindArg, activeOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repoPG) SearchByName(ctx context.Context, kind ItemKind, term string) ([]*Item, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+itemCols+` FROM catalog_item
		WHERE kind = $1 AND active AND name ILIKE '%' || $2 || '%'
		ORDER BY name`,
		kind, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]*Item, error) {
	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Kind, &it.Name, &it.PriceStandard, &it.PriceMember,
			&it.PriceStaff, &it.Active, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.Kind, &it.Name, &it.PriceStandard, &it.PriceMember,
		&it.PriceStaff, &it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
