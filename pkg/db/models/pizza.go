package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
)

// Pizza is immutable catalog seed data. ID is the seed key, Position preserves
// catalog order for listing and recommendations.
type Pizza struct {
	ID          string              `gorm:"column:id;type:text;primaryKey"`
	Position    int                 `gorm:"column:position;not null"`
	Category    enums.PizzaCategory `gorm:"column:category;type:text;not null"`
	PriceCents  int                 `gorm:"column:price_cents;not null"`
	Name        string              `gorm:"column:name;not null"`
	Image       string              `gorm:"column:image"`
	Description string              `gorm:"column:description"`
	Ingredients pq.StringArray      `gorm:"column:ingredients;type:text[];not null;default:ARRAY[]::text[]"`
	Toppings    pq.StringArray      `gorm:"column:toppings;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}
