package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/pricing"
	"storefront-be/internal/product"
	"storefront-be/internal/stock"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"
	"storefront-be/internal/validation"

	"go.uber.org/zap"
)

var errInvalidBody = errors.New("invalid JSON body")

// decodeJSON decodes the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// statusFor maps domain errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	var (
		stockErr   *stock.Error
		missingErr *checkout.MissingFieldError
		validErr   *validation.Error
	)

	switch {
	case errors.As(err, &stockErr),
		errors.As(err, &missingErr),
		errors.As(err, &validErr),
		errors.Is(err, errInvalidBody),
		errors.Is(err, stock.ErrEmptyCart),
		errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrInvalidPrice),
		errors.Is(err, payment.ErrUnsupportedMethod),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInsufficientStock):
		return http.StatusBadRequest

	case errors.Is(err, checkout.ErrUserNotAuthenticated),
		errors.Is(err, cart.ErrUserNotAuthenticated),
		errors.Is(err, order.ErrUserNotAuthenticated),
		errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, customer.ErrShippingDetailsNotFound):
		return http.StatusNotFound

	case errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// writeError renders err as {"error": msg}. Causes of 500s are logged and
// replaced by a generic message, except ErrCommitFailed which is already
// generic.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()

	if code == http.StatusInternalServerError && !errors.Is(err, checkout.ErrCommitFailed) {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "handler"),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = "internal server error"
	}

	utils.WriteJSONError(w, msg, code)
}

func customerID(r *http.Request) uint {
	id, _ := utils.CustomerIDFrom(r.Context())
	return id
}
