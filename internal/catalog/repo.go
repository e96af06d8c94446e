package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListPizzas returns the full catalog in menu order.
func (r *Repository) ListPizzas(ctx context.Context) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

// FindPizzaByID loads a single catalog pizza.
func (r *Repository) FindPizzaByID(ctx context.Context, id string) (*models.Pizza, error) {
	var pizza models.Pizza
	if err := r.db.WithContext(ctx).First(&pizza, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pizza, nil
}

// ListIngredients returns every build-your-own ingredient.
func (r *Repository) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindIngredientsByNames resolves ingredient rows for the supplied names.
func (r *Repository) FindIngredientsByNames(ctx context.Context, names []string) ([]models.Ingredient, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
