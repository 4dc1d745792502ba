package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"
	"storefront-be/internal/stock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// --- Mocks ---

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetItems(ctx context.Context, customerID uint) ([]cart.Item, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Item), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Lookup(ctx context.Context, productID uint) (*product.Listing, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Listing), args.Error(1)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Commit(ctx context.Context, d *order.Draft) (uint, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(uint), args.Error(1)
}

// --- Helpers ---

var fixedNow = time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	carts   *MockCartRepository
	catalog *MockCatalog
	orders  *MockOrderStore
	svc     Service
	logs    *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	f := &fixture{
		carts:   new(MockCartRepository),
		catalog: new(MockCatalog),
		orders:  new(MockOrderStore),
		logs:    logs,
	}
	f.svc = NewService(
		f.carts,
		f.catalog,
		f.orders,
		pricing.NewEngine(pricing.DefaultPolicy()),
		WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

// withItems stubs the cart contents and a catalog listing per product.
func (f *fixture) withItems(items []cart.Item, listings ...*product.Listing) {
	f.carts.On("GetItems", mock.Anything, uint(9)).Return(items, nil)
	for _, l := range listings {
		f.catalog.On("Lookup", mock.Anything, l.ProductID).Return(l, nil)
	}
}

func (f *fixture) transitions() []string {
	var out []string
	for _, e := range f.logs.FilterMessage("checkout transition").All() {
		out = append(out, e.ContextMap()["to"].(string))
	}
	return out
}

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		ShippingDetails: &ShippingDetailsInput{
			FullName: "Ada Lovelace",
			Address:  "12 Analytical St",
			Phone:    "0123456",
		},
	}
}

func listing(id uint, price string, stock int) *product.Listing {
	return &product.Listing{
		ProductID: id,
		Name:      "Product",
		UnitPrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
}

// --- Tests ---

func TestPlaceOrder_ScenarioA_FlatShipping(t *testing.T) {
	f := newFixture(t)
	f.withItems([]cart.Item{{ProductID: 1, Quantity: 1}}, listing(1, "600", 5))

	var draft *order.Draft
	f.orders.On("Commit", mock.Anything, mock.AnythingOfType("*order.Draft")).
		Run(func(args mock.Arguments) { draft = args.Get(1).(*order.Draft) }).
		Return(uint(42), nil)

	receipt, err := f.svc.PlaceOrder(context.Background(), 9, validRequest())
	require.NoError(t, err)

	assert.Equal(t, uint(42), receipt.OrderID)
	assert.Equal(t, "650.00", receipt.TotalAmount.StringFixed(2))
	assert.Equal(t, payment.MethodCashOnDelivery, receipt.PaymentMethod)

	require.NotNil(t, draft)
	assert.Equal(t, uint(9), draft.CustomerID)
	assert.Equal(t, "600.00", draft.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "50.00", draft.Totals.ShippingCost.StringFixed(2))
	assert.Equal(t, customer.ShippingDetails{FullName: "Ada Lovelace", Address: "12 Analytical St", Phone: "0123456"}, draft.Shipping)

	assert.Equal(t, []string{string(StateValidated), string(StateCommitted)}, f.transitions())
}

func TestPlaceOrder_ScenarioB_FreeShipping(t *testing.T) {
	f := newFixture(t)
	f.withItems([]cart.Item{{ProductID: 1, Quantity: 1}}, listing(1, "1200", 5))
	f.orders.On("Commit", mock.Anything, mock.Anything).Return(uint(1), nil)

	receipt, err := f.svc.PlaceOrder(context.Background(), 9, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "1200.00", receipt.TotalAmount.StringFixed(2))
}

func TestPlaceOrder_ScenarioC_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.withItems([]cart.Item{{ProductID: 1, Quantity: 2}}, listing(1, "500", 1))

	_, err := f.svc.PlaceOrder(context.Background(), 9, validRequest())

	var serr *stock.Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Shortages[0].Requested)
	assert.Equal(t, 1, serr.Shortages[0].Available)
	f.orders.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	assert.Equal(t, []string{string(StateFailed)}, f.transitions())
}

func TestPlaceOrder_ScenarioD_FixedDiscountClamped(t *testing.T) {
	f := newFixture(t)
	l := listing(1, "1000", 10)
	l.Discount = &pricing.Discount{
		Type:      pricing.DiscountFixed,
		Value:     decimal.NewFromInt(1500),
		ValidFrom: fixedNow.AddDate(0, 0, -1),
		ValidTo:   fixedNow.AddDate(0, 0, 1),
	}
	f.withItems([]cart.Item{{ProductID: 1, Quantity: 1}}, l)

	var draft *order.Draft
	f.orders.On("Commit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { draft = args.Get(1).(*order.Draft) }).
		Return(uint(3), nil)

	receipt, err := f.svc.PlaceOrder(context.Background(), 9, validRequest())
	require.NoError(t, err)

	assert.Equal(t, "50.00", receipt.TotalAmount.StringFixed(2))
	require.Len(t, draft.Lines, 1)
	assert.True(t, draft.Lines[0].DiscountAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, draft.Lines[0].NetAmount.IsZero())
}

func TestPlaceOrder_ScenarioE_EmptyCartBeforeFieldValidation(t *testing.T) {
	f := newFixture(t)
	f.carts.On("GetItems", mock.Anything, uint(9)).Return([]cart.Item{}, nil)

	// shipping details are missing too; the empty cart must win
	_, err := f.svc.PlaceOrder(context.Background(), 9, PlaceOrderRequest{})

	assert.ErrorIs(t, err, stock.ErrEmptyCart)
	f.catalog.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	f.orders.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	cases := []struct {
		name  string
		input *ShippingDetailsInput
		field string
	}{
		{"NoDetails", nil, "full_name"},
		{"BlankName", &ShippingDetailsInput{FullName: "  ", Address: "a", Phone: "1"}, "full_name"},
		{"NoAddress", &ShippingDetailsInput{FullName: "n", Phone: "1"}, "address"},
		{"NoPhone", &ShippingDetailsInput{FullName: "n", AddressLine1: "a"}, "phone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.withItems([]cart.Item{{ProductID: 1, Quantity: 1}}, listing(1, "10", 5))

			_, err := f.svc.PlaceOrder(context.Background(), 9, PlaceOrderRequest{ShippingDetails: tc.input})

			var mf *MissingFieldError
			require.True(t, errors.As(err, &mf))
			assert.Equal(t, tc.field, mf.Field)
			assert.Equal(t, "field '"+tc.field+"' is required", err.Error())
			f.orders.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
		})
	}
}

func TestPlaceOrder_ComposesSplitAddress(t *testing.T) {
	f := newFixture(t)
	f.withItems([]cart.Item{{ProductID: 1, Quantity: 1}}, listing(1, "10", 5))

	var draft *order.Draft
	f.orders.On("Commit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { draft = args.Get(1).(*order.Draft) }).
		Return(uint(1), nil)

	req := PlaceOrderRequest{
		PaymentMethod: payment.MethodMobileBanking,
		ShippingDetails: &ShippingDetailsInput{
			FullName:     "Ada",
			AddressLine1: "12 Analytical St",
			AddressLine2: "Flat 3",
			Phone:        "0123456",
		},
	}

	receipt, err := f.svc.PlaceOrder(context.Background(), 9, req)
	require.NoError(t, err)
	assert.Equal(t, "12 Analytical St, Flat 3", draft.Shipping.Address)
	assert.Equal(t, payment.MethodMobileBanking, receipt.PaymentMethod)
	assert.Equal(t, payment.MethodMobileBanking, draft.PaymentMethod)
}

func TestPlaceOrder_UnsupportedPaymentMethod(t *testing.T) {
	f := newFixture(t)
	f.withItems([]cart.Item{{ProductID: 1, Quantity: 1}}, listing(1, "10", 5))

	req := validRequest()
	req.PaymentMethod = "Barter"

	_, err := f.svc.PlaceOrder(context.Background(), 9, req)
	assert.ErrorIs(t, err, payment.ErrUnsupportedMethod)
}

func TestPlaceOrder_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PlaceOrder(context.Background(), 0, validRequest())
	assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	f.carts.AssertNotCalled(t, "GetItems", mock.Anything, mock.Anything)
}

func TestPlaceOrder_CatalogLookupFails(t *testing.T) {
	f := newFixture(t)
	f.carts.On("GetItems", mock.Anything, uint(9)).Return([]cart.Item{{ProductID: 7, Quantity: 1}}, nil)
	f.catalog.On("Lookup", mock.Anything, uint(7)).Return(nil, product.ErrProductNotFound)

	_, err := f.svc.PlaceOrder(context.Background(), 9, validRequest())
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestPlaceOrder_StockExhaustedAtCommit(t *testing.T) {
	f := newFixture(t)
	f.withItems([]cart.Item{{ProductID: 1, Quantity: 2}}, listing(1, "100", 5))

	commitErr := &stock.Error{Shortages: []stock.Shortage{{ProductID: 1, Requested: 2, Available: 1}}}
	f.orders.On("Commit", mock.Anything, mock.Anything).Return(uint(0), commitErr)

	_, err := f.svc.PlaceOrder(context.Background(), 9, validRequest())

	var serr *stock.Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, commitErr, serr)
	assert.Equal(t, []string{string(StateValidated), string(StateFailed)}, f.transitions())
}

func TestPlaceOrder_CommitFailedHidesCause(t *testing.T) {
	f := newFixture(t)
	f.withItems([]cart.Item{{ProductID: 1, Quantity: 1}}, listing(1, "100", 5))
	f.orders.On("Commit", mock.Anything, mock.Anything).
		Return(uint(0), errors.New("insert payment: connection reset"))

	_, err := f.svc.PlaceOrder(context.Background(), 9, validRequest())

	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.NotContains(t, err.Error(), "connection reset")

	logged := f.logs.FilterMessage("commit failed").All()
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0].ContextMap()["error"], "connection reset")
}

func TestPlaceOrder_MultiLineTotals(t *testing.T) {
	f := newFixture(t)
	pct := listing(2, "3.335", 10)
	pct.Discount = &pricing.Discount{
		Type:      pricing.DiscountPercentage,
		Value:     decimal.NewFromInt(10),
		ValidFrom: fixedNow,
		ValidTo:   fixedNow,
	}
	f.withItems(
		[]cart.Item{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 3}},
		listing(1, "495", 5), pct,
	)

	var draft *order.Draft
	f.orders.On("Commit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { draft = args.Get(1).(*order.Draft) }).
		Return(uint(8), nil)

	receipt, err := f.svc.PlaceOrder(context.Background(), 9, validRequest())
	require.NoError(t, err)

	// 990 + (10.005 - 1.0005) = 999.0045 -> 999.00, below the threshold
	assert.Equal(t, "999.00", draft.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "1049.00", receipt.TotalAmount.StringFixed(2))
}
