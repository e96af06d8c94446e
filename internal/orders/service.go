package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/pizzaria-backend/internal/cart"
	"github.com/angelmondragon/pizzaria-backend/pkg/config"
	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	"github.com/angelmondragon/pizzaria-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
	"github.com/angelmondragon/pizzaria-backend/pkg/logger"
	"github.com/angelmondragon/pizzaria-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// orderLocker is the per-user placement lock. It is a fast-path guard in
// front of the transaction's row locks, not the correctness mechanism.
type orderLocker interface {
	AcquireOrderLock(ctx context.Context, userID string, ttl time.Duration) (bool, error)
	ReleaseOrderLock(ctx context.Context, userID string) error
}

// Service converts carts into orders and reads them back.
type Service interface {
	Place(ctx context.Context, userID uuid.UUID) (*OrderDTO, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
}

type service struct {
	orders   *Repository
	cartRepo *cart.Repository
	tx       txRunner
	locker   orderLocker
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
	checkout config.CheckoutConfig
}

// ServiceParams bundles the order service dependencies. Locker, metrics and
// logger are optional.
type ServiceParams struct {
	Orders   *Repository
	CartRepo *cart.Repository
	Tx       txRunner
	Locker   orderLocker
	Metrics  *metrics.CheckoutMetrics
	Logger   *logger.Logger
	Checkout config.CheckoutConfig
}

// NewService builds the order placement service.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{
		orders:   params.Orders,
		cartRepo: params.CartRepo,
		tx:       params.Tx,
		locker:   params.Locker,
		metrics:  params.Metrics,
		logg:     params.Logger,
		checkout: params.Checkout,
	}, nil
}

// Place atomically snapshots the cart into an order and clears the cart.
// Concurrent placements for the same user serialize on the cart row locks;
// the loser finds an empty cart and gets the empty-cart error.
func (s *service) Place(ctx context.Context, userID uuid.UUID) (*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	if s.locker != nil {
		ttl := s.checkout.PlaceLockTTL
		if ttl <= 0 {
			ttl = 10 * time.Second
		}
		acquired, err := s.locker.AcquireOrderLock(ctx, userID.String(), ttl)
		if err != nil {
			// redis trouble must not block checkout; row locks still serialize
			if s.logg != nil {
				s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"error": err.Error()}), "checkout.lock.unavailable")
			}
		} else if !acquired {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "another order is being placed for this account")
		} else {
			defer func() {
				if releaseErr := s.locker.ReleaseOrderLock(context.WithoutCancel(ctx), userID.String()); releaseErr != nil && s.logg != nil {
					s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"error": releaseErr.Error()}), "checkout.lock.release_failed")
				}
			}()
		}
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orders.WithTx(tx)

		lines, err := cartRepo.ListForUserLocked(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		order := &models.Order{
			UserID: userID,
			Status: enums.OrderStatusConfirmed,
			Lines:  make([]models.OrderLine, 0, len(lines)),
		}
		for i := range lines {
			line := &lines[i]
			order.TotalCents += line.PriceCents * line.Quantity
			order.Lines = append(order.Lines, models.OrderLine{
				Kind:              line.Kind,
				Name:              line.Name,
				BasePizza:         line.BasePizza,
				PriceCents:        line.PriceCents,
				Quantity:          line.Quantity,
				CustomIngredients: line.CustomIngredients,
				Image:             line.Image,
			})
		}

		if _, err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		if err := cartRepo.DeleteAllForUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		placed = order
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeEmptyCart {
			s.metrics.IncRejected("empty_cart")
		}
		return nil, err
	}

	s.metrics.IncPlaced(int64(placed.TotalCents))
	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, placed.ID.String())
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"total_cents": placed.TotalCents,
			"line_count":  len(placed.Lines),
		})
		s.logg.Info(logCtx, "order.placed")
	}
	return FromModel(placed), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	orders, err := s.orders.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, *FromModel(&orders[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orders.FindForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return FromModel(order), nil
}
