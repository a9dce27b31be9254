// Package checkout turns a cart into an order confirmation.
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront-core/server/internal/cart"
	errx "github.com/storefront-core/server/internal/core/error"
	"github.com/storefront-core/server/internal/model"
	logx "github.com/storefront-core/server/pkg/logger"
)

var ErrEmptyCart = errors.New("cart is empty")

const (
	DefaultDeliveryDays = 5
)

// DefaultFreeShippingThreshold is the order total from which shipping is free.
var DefaultFreeShippingThreshold = decimal.NewFromInt(100)

type Config struct {
	DeliveryDays          int
	FreeShippingThreshold decimal.Decimal
	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

type Service struct {
	deliveryDays int
	threshold    decimal.Decimal
	now          func() time.Time
	newID        func() string
}

func NewService(cfg Config) *Service {
	s := &Service{
		deliveryDays: cfg.DeliveryDays,
		threshold:    cfg.FreeShippingThreshold,
		now:          cfg.Now,
		newID:        cfg.NewID,
	}
	if s.deliveryDays <= 0 {
		s.deliveryDays = DefaultDeliveryDays
	}
	if s.threshold.IsZero() {
		s.threshold = DefaultFreeShippingThreshold
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Quote returns the order PlaceOrder would produce for state, without an id.
func (s *Service) Quote(state model.CartState) model.Order {
	placedAt := s.now()
	return model.Order{
		Items:            state.Items,
		ItemCount:        state.ItemCount(),
		Total:            state.Total,
		FreeShipping:     state.Total.GreaterThanOrEqual(s.threshold),
		PlacedAt:         placedAt,
		EstimatedArrival: placedAt.AddDate(0, 0, s.deliveryDays),
	}
}

// PlaceOrder empties store and returns the order for what it held. Taking the
// items and clearing the cart happen in one dispatch, so an item added
// concurrently ends up either in the order or in the fresh cart, never both.
// An empty cart yields ErrEmptyCart and leaves the store untouched.
func (s *Service) PlaceOrder(ctx context.Context, store *cart.Store) (model.Order, cart.Result, error) {
	if store.State().IsEmpty() {
		return model.Order{}, cart.Result{}, errx.Unprocessable(ErrEmptyCart, "cart is empty")
	}

	res := store.ClearCart()
	if res.Previous.IsEmpty() {
		// emptied by someone else between the check and the clear
		return model.Order{}, res, errx.Unprocessable(ErrEmptyCart, "cart is empty")
	}

	order := s.Quote(res.Previous)
	order.ID = s.newID()

	logx.Info().
		Str("order_id", order.ID).
		Int("item_count", order.ItemCount).
		Str("total", order.Total.StringFixed(2)).
		Bool("free_shipping", order.FreeShipping).
		Msg("order placed")

	return order, res, nil
}
