package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
)

// CartLine is one purchasable unit pending order, owned by exactly one user.
// PriceCents is the unit price frozen at creation: base pizza price plus the
// selected ingredient prices. Later catalog price changes never touch it.
type CartLine struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID              uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Kind                enums.ItemKind `gorm:"column:kind;type:text;not null"`
	ItemID              *string        `gorm:"column:item_id"`
	Name                string         `gorm:"column:name;not null"`
	BasePizza           *string        `gorm:"column:base_pizza"`
	BasePizzaPriceCents int            `gorm:"column:base_pizza_price_cents;not null;default:0"`
	PriceCents          int            `gorm:"column:price_cents;not null"`
	Quantity            int            `gorm:"column:quantity;not null;default:1"`
	CustomIngredients   pq.StringArray `gorm:"column:custom_ingredients;type:text[];not null;default:ARRAY[]::text[]"`
	Image               string         `gorm:"column:image"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
}
