package enums

import "fmt"

// ItemKind distinguishes stock catalog pizzas from user-built ones.
type ItemKind string

const (
	ItemKindCatalogPizza ItemKind = "catalog-pizza"
	ItemKindCustom       ItemKind = "custom"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindCatalogPizza, ItemKindCustom:
		return true
	}
	return false
}

func (k ItemKind) String() string {
	return string(k)
}

// ParseItemKind validates a raw item kind value.
func ParseItemKind(raw string) (ItemKind, error) {
	kind := ItemKind(raw)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid item kind %q", raw)
	}
	return kind, nil
}

// PizzaCategory is the dietary category of a catalog pizza.
type PizzaCategory string

const (
	PizzaCategoryVeg    PizzaCategory = "veg"
	PizzaCategoryNonVeg PizzaCategory = "non-veg"
)

func (c PizzaCategory) IsValid() bool {
	switch c {
	case PizzaCategoryVeg, PizzaCategoryNonVeg:
		return true
	}
	return false
}

func (c PizzaCategory) String() string {
	return string(c)
}

// OrderStatus tracks the lifecycle of an order. Confirmed is currently the
// only reachable state; the type exists so future transitions slot in without
// a schema change.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
)

func (s OrderStatus) IsValid() bool {
	return s == OrderStatusConfirmed
}

func (s OrderStatus) String() string {
	return string(s)
}
