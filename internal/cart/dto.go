package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
	"github.com/angelmondragon/pizzaria-backend/pkg/money"
)

// AddLineRequest is the payload for adding an item to the cart. Prices are
// never taken from the client; the service resolves them from the catalog.
type AddLineRequest struct {
	Kind              string   `json:"kind" validate:"required,oneof=catalog-pizza custom"`
	ItemID            string   `json:"item_id,omitempty"`
	Name              string   `json:"name,omitempty"`
	BasePizza         string   `json:"base_pizza,omitempty"`
	CustomIngredients []string `json:"custom_ingredients,omitempty"`
	Quantity          int      `json:"quantity,omitempty"`
}

// UpdateQuantityRequest carries the replacement quantity for a cart line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// LineDTO is the transport shape of one cart line.
type LineDTO struct {
	ID                uuid.UUID      `json:"id"`
	Kind              enums.ItemKind `json:"kind"`
	ItemID            *string        `json:"item_id,omitempty"`
	Name              string         `json:"name"`
	BasePizza         *string        `json:"base_pizza,omitempty"`
	Price             string         `json:"price"`
	PriceCents        int            `json:"price_cents"`
	Quantity          int            `json:"quantity"`
	LineTotalCents    int            `json:"line_total_cents"`
	CustomIngredients []string       `json:"custom_ingredients,omitempty"`
	Image             string         `json:"image,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// CartDTO is the full cart view with derived totals.
type CartDTO struct {
	Lines         []LineDTO `json:"lines"`
	Count         int       `json:"count"`
	SubtotalCents int       `json:"subtotal_cents"`
	Subtotal      string    `json:"subtotal"`
}

// CountDTO carries the derived badge count.
type CountDTO struct {
	Count int `json:"count"`
}

func LineFromModel(line *models.CartLine) *LineDTO {
	if line == nil {
		return nil
	}
	return &LineDTO{
		ID:                line.ID,
		Kind:              line.Kind,
		ItemID:            line.ItemID,
		Name:              line.Name,
		BasePizza:         line.BasePizza,
		Price:             money.FormatCents(line.PriceCents),
		PriceCents:        line.PriceCents,
		Quantity:          line.Quantity,
		LineTotalCents:    line.PriceCents * line.Quantity,
		CustomIngredients: append([]string(nil), line.CustomIngredients...),
		Image:             line.Image,
		CreatedAt:         line.CreatedAt,
	}
}

func CartFromModels(lines []models.CartLine) *CartDTO {
	dto := &CartDTO{Lines: make([]LineDTO, 0, len(lines))}
	for i := range lines {
		line := LineFromModel(&lines[i])
		dto.Lines = append(dto.Lines, *line)
		dto.Count += line.Quantity
		dto.SubtotalCents += line.LineTotalCents
	}
	dto.Subtotal = money.FormatCents(dto.SubtotalCents)
	return dto
}
