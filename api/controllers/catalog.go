package controllers

import (
	"net/http"

	"github.com/angelmondragon/pizzaria-backend/api/responses"
	"github.com/angelmondragon/pizzaria-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
	"github.com/angelmondragon/pizzaria-backend/pkg/logger"
)

// CatalogPizzas serves the menu in catalog order.
func CatalogPizzas(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pizzas, err := svc.ListPizzas(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pizzas)
	}
}

// CatalogIngredients serves the ingredients available for custom pizzas.
func CatalogIngredients(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ingredients, err := svc.ListIngredients(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ingredients)
	}
}
