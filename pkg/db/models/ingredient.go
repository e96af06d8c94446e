package models

import "time"

// Ingredient is an add-on for custom-built pizzas. Immutable catalog seed data
// keyed by the seed's integer identifier.
type Ingredient struct {
	ID         int       `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	PriceCents int       `gorm:"column:price_cents;not null"`
	Image      string    `gorm:"column:image"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
