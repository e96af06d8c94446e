package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
)

type cartRepository interface {
	Create(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	FindForUser(ctx context.Context, userID, lineID uuid.UUID) (*models.CartLine, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (int64, error)
	Delete(ctx context.Context, userID, lineID uuid.UUID) (int64, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
	CountForUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type priceResolver interface {
	FindPizzaByID(ctx context.Context, id string) (*models.Pizza, error)
	ListPizzas(ctx context.Context) ([]models.Pizza, error)
	FindIngredientsByNames(ctx context.Context, names []string) ([]models.Ingredient, error)
}

// Service exposes the cart ledger operations.
type Service interface {
	AddLine(ctx context.Context, userID uuid.UUID, req AddLineRequest) (*LineDTO, error)
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*LineDTO, error)
	RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	Count(ctx context.Context, userID uuid.UUID) (*CountDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo    cartRepository
	catalog priceResolver
}

// ServiceParams bundles the cart service dependencies.
type ServiceParams struct {
	Repo    cartRepository
	Catalog priceResolver
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog resolver is required")
	}
	return &service{repo: params.Repo, catalog: params.Catalog}, nil
}

func (s *service) AddLine(ctx context.Context, userID uuid.UUID, req AddLineRequest) (*LineDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	kind, err := enums.ParseItemKind(req.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item kind").
			WithDetails(map[string]any{"kind": req.Kind})
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var line *models.CartLine
	switch kind {
	case enums.ItemKindCatalogPizza:
		line, err = s.buildCatalogLine(ctx, req)
	case enums.ItemKindCustom:
		line, err = s.buildCustomLine(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	line.UserID = userID
	line.Quantity = quantity

	created, err := s.repo.Create(ctx, line)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
	}
	return LineFromModel(created), nil
}

func (s *service) buildCatalogLine(ctx context.Context, req AddLineRequest) (*models.CartLine, error) {
	itemID := strings.TrimSpace(req.ItemID)
	if itemID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id is required for catalog pizzas")
	}

	pizza, err := s.catalog.FindPizzaByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown catalog pizza").
				WithDetails(map[string]any{"item_id": itemID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve catalog pizza")
	}

	return &models.CartLine{
		Kind:       enums.ItemKindCatalogPizza,
		ItemID:     &pizza.ID,
		Name:       pizza.Name,
		PriceCents: pizza.PriceCents,
		Image:      pizza.Image,
	}, nil
}

// buildCustomLine prices a build-your-own pizza server side: the named base
// pizza's catalog price plus each selected ingredient's price. Every name
// must resolve or the add is rejected.
func (s *service) buildCustomLine(ctx context.Context, req AddLineRequest) (*models.CartLine, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required for custom pizzas")
	}
	if len(req.CustomIngredients) == 0 && strings.TrimSpace(req.BasePizza) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "custom pizza needs a base pizza or ingredients")
	}

	totalCents := 0
	line := &models.CartLine{
		Kind: enums.ItemKindCustom,
		Name: name,
	}

	if base := strings.TrimSpace(req.BasePizza); base != "" {
		pizza, err := s.findPizzaByName(ctx, base)
		if err != nil {
			return nil, err
		}
		line.BasePizza = &pizza.Name
		line.BasePizzaPriceCents = pizza.PriceCents
		line.Image = pizza.Image
		totalCents += pizza.PriceCents
	}

	if len(req.CustomIngredients) > 0 {
		names := make([]string, 0, len(req.CustomIngredients))
		for _, raw := range req.CustomIngredients {
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		ingredients, err := s.catalog.FindIngredientsByNames(ctx, names)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve ingredients")
		}

		priced := make(map[string]int, len(ingredients))
		for _, ing := range ingredients {
			priced[ing.Name] = ing.PriceCents
		}
		var unknown []string
		for _, n := range names {
			cents, ok := priced[n]
			if !ok {
				unknown = append(unknown, n)
				continue
			}
			totalCents += cents
		}
		if len(unknown) > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown ingredients").
				WithDetails(map[string]any{"ingredients": unknown})
		}
		line.CustomIngredients = pq.StringArray(names)
	}

	line.PriceCents = totalCents
	return line, nil
}

func (s *service) findPizzaByName(ctx context.Context, name string) (*models.Pizza, error) {
	pizzas, err := s.catalog.ListPizzas(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pizzas")
	}
	for i := range pizzas {
		if strings.EqualFold(pizzas[i].Name, name) {
			return &pizzas[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown base pizza").
		WithDetails(map[string]any{"base_pizza": name})
}

func (s *service) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*LineDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	affected, err := s.repo.UpdateQuantity(ctx, userID, lineID, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update quantity")
	}
	if affected == 0 {
		// not found and not owned look identical to the caller
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	line, err := s.repo.FindForUser(ctx, userID, lineID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart line")
	}
	return LineFromModel(line), nil
}

func (s *service) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, lineID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	lines, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}
	return CartFromModels(lines), nil
}

func (s *service) Count(ctx context.Context, userID uuid.UUID) (*CountDTO, error) {
	count, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count cart")
	}
	return &CountDTO{Count: count}, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}
