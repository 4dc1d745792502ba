package customer

import (
	"context"
	"errors"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetShippingDetails(ctx context.Context, customerID uint) (*ShippingDetails, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetShippingDetails returns the details saved by the last checkout, used to
// prefill the next one.
func (s *service) GetShippingDetails(ctx context.Context, customerID uint) (*ShippingDetails, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetShippingDetails"),
	)

	d, err := s.repo.GetShippingDetails(ctx, customerID)
	if err != nil {
		if !errors.Is(err, ErrShippingDetailsNotFound) {
			log.Error("failed to load shipping details", zap.Error(err))
		}
		return nil, err
	}
	return d, nil
}
