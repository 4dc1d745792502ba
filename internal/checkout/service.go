package checkout

import (
	"context"
	"errors"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"
	"storefront-be/internal/stock"

	"go.uber.org/zap"
)

type CartRepository interface {
	GetItems(ctx context.Context, customerID uint) ([]cart.Item, error)
}

type ProductCatalog interface {
	Lookup(ctx context.Context, productID uint) (*product.Listing, error)
}

type OrderStore interface {
	Commit(ctx context.Context, d *order.Draft) (uint, error)
}

type Service interface {
	PlaceOrder(ctx context.Context, customerID uint, req PlaceOrderRequest) (*Receipt, error)
}

type Option func(*service)

// WithClock sets the clock used to decide which discounts are active.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	carts   CartRepository
	catalog ProductCatalog
	orders  OrderStore
	engine  *pricing.Engine
	now     func() time.Time
}

func NewService(
	carts CartRepository,
	catalog ProductCatalog,
	orders OrderStore,
	engine *pricing.Engine,
	opts ...Option,
) Service {
	s := &service{
		carts:   carts,
		catalog: catalog,
		orders:  orders,
		engine:  engine,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// attempt tracks one checkout through its states.
type attempt struct {
	state State
	log   *zap.Logger
	timer *metrics.Timer
}

func (a *attempt) advance(to State) {
	a.log.Info("checkout transition",
		zap.String("from", string(a.state)),
		zap.String("to", string(to)),
	)
	a.state = to
}

func (a *attempt) fail(outcome string, err error) error {
	a.log.Info("checkout transition",
		zap.String("from", string(a.state)),
		zap.String("to", string(StateFailed)),
		zap.String("outcome", outcome),
		zap.Error(err),
	)
	a.state = StateFailed
	metrics.ObserveCheckout(outcome, a.timer.Duration(), 0)
	return err
}

// PlaceOrder turns the customer's cart into a pending order. Every
// validation runs before the commit transaction is opened; a failure at any
// point leaves the cart, stock and orders untouched.
func (s *service) PlaceOrder(ctx context.Context, customerID uint, req PlaceOrderRequest) (*Receipt, error) {
	a := &attempt{
		state: StateDraft,
		log: logger.FromCtx(ctx).With(
			zap.String("layer", "service"),
			zap.String("method", "PlaceOrder"),
		),
		timer: metrics.StartTimer(),
	}

	if customerID == 0 {
		return nil, a.fail(metrics.OutcomeInvalid, ErrUserNotAuthenticated)
	}

	// Draft: cart lines joined with live catalog values.
	items, err := s.carts.GetItems(ctx, customerID)
	if err != nil {
		return nil, a.fail(metrics.OutcomeLookupFailure, err)
	}

	lines := make([]cart.Line, 0, len(items))
	for _, it := range items {
		listing, err := s.catalog.Lookup(ctx, it.ProductID)
		if err != nil {
			return nil, a.fail(metrics.OutcomeLookupFailure, err)
		}
		lines = append(lines, cart.NewLine(it, listing))
	}

	if err := stock.Validate(lines); err != nil {
		outcome := metrics.OutcomeStock
		if errors.Is(err, stock.ErrEmptyCart) {
			outcome = metrics.OutcomeEmptyCart
		}
		return nil, a.fail(outcome, err)
	}

	shipping, err := shippingDetails(req.ShippingDetails)
	if err != nil {
		return nil, a.fail(metrics.OutcomeInvalid, err)
	}

	method, err := payment.NormalizeMethod(req.PaymentMethod)
	if err != nil {
		return nil, a.fail(metrics.OutcomeInvalid, err)
	}

	asOf := s.now()
	priced := make([]pricing.PricedLine, 0, len(lines))
	for _, l := range lines {
		p, err := s.engine.PriceLine(l.ProductID, l.UnitPrice, l.Quantity, l.Discount, asOf)
		if err != nil {
			return nil, a.fail(metrics.OutcomeInvalid, err)
		}
		priced = append(priced, p)
	}
	totals := s.engine.Aggregate(priced)

	a.advance(StateValidated)

	orderID, err := s.orders.Commit(ctx, &order.Draft{
		CustomerID:    customerID,
		Shipping:      shipping,
		PaymentMethod: method,
		Lines:         priced,
		Totals:        totals,
	})
	if err != nil {
		var serr *stock.Error
		if errors.As(err, &serr) {
			return nil, a.fail(metrics.OutcomeStock, serr)
		}
		a.log.Error("commit failed", zap.Error(err))
		return nil, a.fail(metrics.OutcomeCommitFailed, ErrCommitFailed)
	}

	a.advance(StateCommitted)
	metrics.ObserveCheckout(metrics.OutcomeCommitted, a.timer.Duration(), totals.GrandTotal.InexactFloat64())

	a.log.Info("order placed",
		zap.Uint("order_id", orderID),
		zap.String("total", totals.GrandTotal.StringFixed(2)),
		zap.Int("lines", len(priced)),
	)

	return &Receipt{
		OrderID:       orderID,
		TotalAmount:   totals.GrandTotal,
		PaymentMethod: method,
	}, nil
}
