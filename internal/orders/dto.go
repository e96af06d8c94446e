package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
	"github.com/angelmondragon/pizzaria-backend/pkg/money"
)

// LineDTO is the immutable snapshot shape of one ordered item.
type LineDTO struct {
	ID                uuid.UUID      `json:"id"`
	Kind              enums.ItemKind `json:"kind"`
	Name              string         `json:"name"`
	BasePizza         *string        `json:"base_pizza,omitempty"`
	Price             string         `json:"price"`
	PriceCents        int            `json:"price_cents"`
	Quantity          int            `json:"quantity"`
	LineTotalCents    int            `json:"line_total_cents"`
	CustomIngredients []string       `json:"custom_ingredients,omitempty"`
	Image             string         `json:"image,omitempty"`
}

// OrderDTO is the transport shape of a placed order.
type OrderDTO struct {
	ID         uuid.UUID         `json:"id"`
	Status     enums.OrderStatus `json:"status"`
	Total      string            `json:"total"`
	TotalCents int               `json:"total_cents"`
	Lines      []LineDTO         `json:"lines"`
	CreatedAt  time.Time         `json:"created_at"`
}

func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:         order.ID,
		Status:     order.Status,
		Total:      money.FormatCents(order.TotalCents),
		TotalCents: order.TotalCents,
		Lines:      make([]LineDTO, 0, len(order.Lines)),
		CreatedAt:  order.CreatedAt,
	}
	for i := range order.Lines {
		line := &order.Lines[i]
		dto.Lines = append(dto.Lines, LineDTO{
			ID:                line.ID,
			Kind:              line.Kind,
			Name:              line.Name,
			BasePizza:         line.BasePizza,
			Price:             money.FormatCents(line.PriceCents),
			PriceCents:        line.PriceCents,
			Quantity:          line.Quantity,
			LineTotalCents:    line.PriceCents * line.Quantity,
			CustomIngredients: append([]string(nil), line.CustomIngredients...),
			Image:             line.Image,
		})
	}
	return dto
}
