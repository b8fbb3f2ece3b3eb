package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind distinguishes prescribable medications from billable services.
type ItemKind string

const (
	KindMedication ItemKind = "medication"
	KindService    ItemKind = "service"
)

// Item maps to the catalog_item table. One row per medication or service
// offered by the clinic, with per-tier pricing.
type Item struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Kind          ItemKind  `db:"kind" json:"kind"`
	Name          string    `db:"name" json:"name"`
	PriceStandard float64   `db:"price_standard" json:"price_standard"`
	PriceMember   float64   `db:"price_member" json:"price_member"`
	PriceStaff    float64   `db:"price_staff" json:"price_staff"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// RateForTier returns the unit price for the given tier, falling back to
// the standard price for unknown tiers.
func (i *Item) RateForTier(tier string) float64 {
	switch tier {
	case "member":
		return i.PriceMember
	case "staff":
		return i.PriceStaff
	default:
		return i.PriceStandard
	}
}
