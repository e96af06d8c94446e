package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
)

type catalogRepository interface {
	ListPizzas(ctx context.Context) ([]models.Pizza, error)
	FindPizzaByID(ctx context.Context, id string) (*models.Pizza, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	FindIngredientsByNames(ctx context.Context, names []string) ([]models.Ingredient, error)
}

// Service exposes the read-only catalog surface.
type Service interface {
	ListPizzas(ctx context.Context) ([]PizzaDTO, error)
	ListIngredients(ctx context.Context) ([]IngredientDTO, error)
}

type service struct {
	repo catalogRepository
}

// NewService builds a catalog service backed by the provided repo.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPizzas(ctx context.Context) ([]PizzaDTO, error) {
	pizzas, err := s.repo.ListPizzas(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pizzas")
	}
	out := make([]PizzaDTO, 0, len(pizzas))
	for i := range pizzas {
		out = append(out, *PizzaFromModel(&pizzas[i]))
	}
	return out, nil
}

func (s *service) ListIngredients(ctx context.Context) ([]IngredientDTO, error) {
	ingredients, err := s.repo.ListIngredients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ingredients")
	}
	out := make([]IngredientDTO, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, *IngredientFromModel(&ingredients[i]))
	}
	return out, nil
}
