package handler

import (
	"encoding/json"
	"net/http"

	"storefront-be/internal/checkout"
	"storefront-be/internal/utils"
)

type CheckoutHandler struct {
	svc checkout.Service
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type PlaceOrderResponse struct {
	OrderID       uint        `json:"orderId"`
	TotalAmount   json.Number `json:"totalAmount"`
	PaymentMethod string      `json:"paymentMethod"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkout.PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := h.svc.PlaceOrder(r.Context(), customerID(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, PlaceOrderResponse{
		OrderID:       receipt.OrderID,
		TotalAmount:   utils.Money(receipt.TotalAmount),
		PaymentMethod: receipt.PaymentMethod,
	})
}
