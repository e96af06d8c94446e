package catalog

import (
	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
	"github.com/angelmondragon/pizzaria-backend/pkg/money"
)

// PizzaDTO is the public catalog shape. Prices travel as whole rupee
// strings to match what the storefront renders.
type PizzaDTO struct {
	ID          string              `json:"id"`
	Category    enums.PizzaCategory `json:"category"`
	Price       string              `json:"price"`
	PriceCents  int                 `json:"price_cents"`
	Name        string              `json:"name"`
	Image       string              `json:"image"`
	Description string              `json:"description"`
	Ingredients []string            `json:"ingredients"`
	Toppings    []string            `json:"toppings"`
}

// IngredientDTO is the public shape for build-your-own ingredients.
type IngredientDTO struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	PriceCents int    `json:"price_cents"`
	Image      string `json:"image"`
}

func PizzaFromModel(p *models.Pizza) *PizzaDTO {
	if p == nil {
		return nil
	}
	return &PizzaDTO{
		ID:          p.ID,
		Category:    p.Category,
		Price:       money.FormatCents(p.PriceCents),
		PriceCents:  p.PriceCents,
		Name:        p.Name,
		Image:       p.Image,
		Description: p.Description,
		Ingredients: append([]string(nil), p.Ingredients...),
		Toppings:    append([]string(nil), p.Toppings...),
	}
}

func IngredientFromModel(i *models.Ingredient) *IngredientDTO {
	if i == nil {
		return nil
	}
	return &IngredientDTO{
		ID:         i.ID,
		Name:       i.Name,
		Price:      money.FormatCents(i.PriceCents),
		PriceCents: i.PriceCents,
		Image:      i.Image,
	}
}
