package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
)

// Order is an immutable priced snapshot of a user's cart at checkout.
// TotalCents is computed once from the lines and never edited afterward.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	TotalCents int               `gorm:"column:total_cents;not null"`
	Status     enums.OrderStatus `gorm:"column:status;type:text;not null;default:'confirmed'"`
	Lines      []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// OrderLine is a deep copy of a cart line at placement time. It carries no
// references back to cart or catalog rows.
type OrderLine struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID      `gorm:"column:order_id;type:uuid;not null;index"`
	Kind              enums.ItemKind `gorm:"column:kind;type:text;not null"`
	Name              string         `gorm:"column:name;not null"`
	BasePizza         *string        `gorm:"column:base_pizza"`
	PriceCents        int            `gorm:"column:price_cents;not null"`
	Quantity          int            `gorm:"column:quantity;not null"`
	CustomIngredients pq.StringArray `gorm:"column:custom_ingredients;type:text[];not null;default:ARRAY[]::text[]"`
	Image             string         `gorm:"column:image"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
}
