package cart

import (
	"context"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"
	"storefront-be/internal/validation"

	"go.uber.org/zap"
)

// Catalog resolves live product values.
type Catalog interface {
	Lookup(ctx context.Context, productID uint) (*product.Listing, error)
}

type Service interface {
	Summary(ctx context.Context, customerID uint) (*Summary, error)
	AddItem(ctx context.Context, params AddItemParams) (*Item, error)
	UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error
	RemoveItem(ctx context.Context, customerID, productID uint) error
	Clear(ctx context.Context, customerID uint) error
}

type service struct {
	repo    Repository
	catalog Catalog
	engine  *pricing.Engine
	now     func() time.Time
}

func NewService(repo Repository, catalog Catalog, engine *pricing.Engine) Service {
	return &service{repo: repo, catalog: catalog, engine: engine, now: time.Now}
}

// Summary prices every cart line against the live catalog.
func (s *service) Summary(ctx context.Context, customerID uint) (*Summary, error) {
	if customerID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	items, err := s.repo.GetItems(ctx, customerID)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	summary := &Summary{Lines: make([]SummaryLine, 0, len(items))}
	priced := make([]pricing.PricedLine, 0, len(items))

	for _, it := range items {
		listing, err := s.catalog.Lookup(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}

		line := NewLine(it, listing)
		p, err := s.engine.PriceLine(line.ProductID, line.UnitPrice, line.Quantity, line.Discount, asOf)
		if err != nil {
			return nil, err
		}

		summary.Lines = append(summary.Lines, SummaryLine{Line: line, Priced: p})
		priced = append(priced, p)
	}

	summary.ItemCount = len(summary.Lines)
	summary.Totals = s.engine.Aggregate(priced)
	return summary, nil
}

// AddItem adds quantity to the cart, accumulating onto an existing line.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("product_id", params.ProductID),
	)

	if params.CustomerID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	if err := validation.Validate(params); err != nil {
		return nil, err
	}

	listing, err := s.catalog.Lookup(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItem(ctx, params.CustomerID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if finalQty > listing.Stock {
		log.Info("add to cart refused",
			zap.Int("requested", finalQty),
			zap.Int("available", listing.Stock),
		)
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, params.CustomerID, params.ProductID, finalQty)
	}

	if err := s.repo.UpdateQuantity(ctx, params.CustomerID, params.ProductID, finalQty); err != nil {
		return nil, err
	}
	existing.Quantity = finalQty
	return existing, nil
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateQuantityParams) error {
	if params.CustomerID == 0 {
		return ErrUserNotAuthenticated
	}

	if params.Quantity <= 0 {
		return s.repo.RemoveItem(ctx, params.CustomerID, params.ProductID)
	}

	listing, err := s.catalog.Lookup(ctx, params.ProductID)
	if err != nil {
		return err
	}
	if params.Quantity > listing.Stock {
		return ErrInsufficientStock
	}

	return s.repo.UpdateQuantity(ctx, params.CustomerID, params.ProductID, params.Quantity)
}

func (s *service) RemoveItem(ctx context.Context, customerID, productID uint) error {
	if customerID == 0 {
		return ErrUserNotAuthenticated
	}
	return s.repo.RemoveItem(ctx, customerID, productID)
}

func (s *service) Clear(ctx context.Context, customerID uint) error {
	if customerID == 0 {
		return ErrUserNotAuthenticated
	}
	return s.repo.Clear(ctx, customerID)
}
