package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
)

//go:embed seed/pizzas.json seed/ingredients.json
var seedFS embed.FS

type pizzaSeed struct {
	ID          string   `json:"id"`
	Position    int      `json:"position"`
	Category    string   `json:"category"`
	PriceCents  int      `json:"price_cents"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Toppings    []string `json:"toppings"`
}

type ingredientSeed struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Image      string `json:"image"`
}

// Seed upserts the embedded menu into the catalog tables. Existing rows are
// refreshed in place so reseeding a dev database is safe.
func Seed(ctx context.Context, db *gorm.DB) error {
	pizzas, ingredients, err := loadSeedData()
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(pizzas) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&pizzas).Error; err != nil {
				return fmt.Errorf("seed pizzas: %w", err)
			}
		}
		if len(ingredients) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&ingredients).Error; err != nil {
				return fmt.Errorf("seed ingredients: %w", err)
			}
		}
		return nil
	})
}

func loadSeedData() ([]models.Pizza, []models.Ingredient, error) {
	rawPizzas, err := seedFS.ReadFile("seed/pizzas.json")
	if err != nil {
		return nil, nil, fmt.Errorf("read pizza seed: %w", err)
	}
	var pizzaSeeds []pizzaSeed
	if err := json.Unmarshal(rawPizzas, &pizzaSeeds); err != nil {
		return nil, nil, fmt.Errorf("decode pizza seed: %w", err)
	}

	pizzas := make([]models.Pizza, 0, len(pizzaSeeds))
	for _, s := range pizzaSeeds {
		category := enums.PizzaCategory(s.Category)
		if !category.IsValid() {
			return nil, nil, fmt.Errorf("pizza %q has invalid category %q", s.ID, s.Category)
		}
		pizzas = append(pizzas, models.Pizza{
			ID:          s.ID,
			Position:    s.Position,
			Category:    category,
			PriceCents:  s.PriceCents,
			Name:        s.Name,
			Image:       s.Image,
			Description: s.Description,
			Ingredients: pq.StringArray(s.Ingredients),
			Toppings:    pq.StringArray(s.Toppings),
		})
	}

	rawIngredients, err := seedFS.ReadFile("seed/ingredients.json")
	if err != nil {
		return nil, nil, fmt.Errorf("read ingredient seed: %w", err)
	}
	var ingredientSeeds []ingredientSeed
	if err := json.Unmarshal(rawIngredients, &ingredientSeeds); err != nil {
		return nil, nil, fmt.Errorf("decode ingredient seed: %w", err)
	}

	ingredients := make([]models.Ingredient, 0, len(ingredientSeeds))
	for _, s := range ingredientSeeds {
		ingredients = append(ingredients, models.Ingredient{
			ID:         s.ID,
			Name:       s.Name,
			PriceCents: s.PriceCents,
			Image:      s.Image,
		})
	}

	return pizzas, ingredients, nil
}
