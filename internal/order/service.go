package order

import (
	"context"
	"errors"

	"storefront-be/internal/logger"
	"storefront-be/internal/payment"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, customerID uint) ([]Order, error)
	Detail(ctx context.Context, customerID, orderID uint) (*Detail, error)
	Dashboard(ctx context.Context, customerID uint) (*Dashboard, error)
}

const recentOrdersLimit = 5

type service struct {
	repo     Repository
	payments payment.Repository
}

func NewService(repo Repository, payments payment.Repository) Service {
	return &service{repo: repo, payments: payments}
}

// List returns the customer's orders, newest first.
func (s *service) List(ctx context.Context, customerID uint) ([]Order, error) {
	if customerID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

// Detail loads an order with its lines, payment and shipment. Orders owned by
// another customer are reported as not found.
func (s *service) Detail(ctx context.Context, customerID, orderID uint) (*Detail, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Detail"),
		zap.Uint("order_id", orderID),
	)

	if customerID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		log.Warn("order requested by non-owner")
		return nil, ErrOrderNotFound
	}

	lines, err := s.repo.GetLines(ctx, orderID)
	if err != nil {
		log.Error("failed to load order lines", zap.Error(err))
		return nil, err
	}

	p, err := s.payments.GetByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, payment.ErrPaymentNotFound) {
		log.Error("failed to load payment", zap.Error(err))
		return nil, err
	}

	shipment, err := s.repo.GetShipment(ctx, orderID)
	if err != nil {
		log.Error("failed to load shipment", zap.Error(err))
		return nil, err
	}

	return &Detail{
		Order:    *o,
		Lines:    lines,
		Payment:  p,
		Shipment: shipment,
	}, nil
}

func (s *service) Dashboard(ctx context.Context, customerID uint) (*Dashboard, error) {
	if customerID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	st, err := s.repo.Stats(ctx, customerID)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListRecent(ctx, customerID, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Stats: st, Recent: recent}, nil
}
