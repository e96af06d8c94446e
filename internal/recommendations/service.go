package recommendations

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/pizzaria-backend/internal/catalog"
	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
)

const defaultLimit = 3

type catalogSource interface {
	ListPizzas(ctx context.Context) ([]models.Pizza, error)
}

type orderHistory interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// Service suggests catalog pizzas based on a user's order history.
type Service interface {
	ForUser(ctx context.Context, userID uuid.UUID) ([]catalog.PizzaDTO, error)
}

type service struct {
	catalog catalogSource
	orders  orderHistory
	limit   int
}

// ServiceParams bundles the recommendation service dependencies.
type ServiceParams struct {
	Catalog catalogSource
	Orders  orderHistory
	Limit   int
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order history is required")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return &service{catalog: params.Catalog, orders: params.Orders, limit: limit}, nil
}

// ForUser prefers pizzas the user has never ordered, in menu order. With no
// history it simply returns the top of the menu; once the whole menu has been
// tried, already-ordered pizzas fill the remaining slots.
func (s *service) ForUser(ctx context.Context, userID uuid.UUID) ([]catalog.PizzaDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	pizzas, err := s.catalog.ListPizzas(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog")
	}

	orders, err := s.orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order history")
	}

	ordered := orderedPizzaNames(orders)

	fresh := make([]catalog.PizzaDTO, 0, s.limit)
	seen := make([]catalog.PizzaDTO, 0, s.limit)
	for i := range pizzas {
		pizza := &pizzas[i]
		if _, ok := ordered[strings.ToLower(pizza.Name)]; ok {
			if len(seen) < s.limit {
				seen = append(seen, *catalog.PizzaFromModel(pizza))
			}
			continue
		}
		if len(fresh) < s.limit {
			fresh = append(fresh, *catalog.PizzaFromModel(pizza))
		}
		if len(fresh) == s.limit {
			break
		}
	}

	for _, dto := range seen {
		if len(fresh) == s.limit {
			break
		}
		fresh = append(fresh, dto)
	}
	return fresh, nil
}

// orderedPizzaNames collects the lowercased names of catalog pizzas across
// all past orders. Custom creations never count against the menu.
func orderedPizzaNames(orders []models.Order) map[string]struct{} {
	names := make(map[string]struct{})
	for i := range orders {
		for j := range orders[i].Lines {
			line := &orders[i].Lines[j]
			if line.Kind != enums.ItemKindCatalogPizza {
				continue
			}
			names[strings.ToLower(line.Name)] = struct{}{}
		}
	}
	return names
}
