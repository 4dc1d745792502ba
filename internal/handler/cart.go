package handler

import (
	"encoding/json"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type CartLineResponse struct {
	ProductID      uint        `json:"productId"`
	Name           string      `json:"name"`
	Quantity       int         `json:"quantity"`
	UnitPrice      json.Number `json:"unitPrice"`
	StockAvailable int         `json:"stockAvailable"`
	Discount       json.Number `json:"discount"`
	FinalPrice     json.Number `json:"finalPrice"`
}

type CartResponse struct {
	Items         []CartLineResponse `json:"items"`
	ItemCount     int                `json:"itemCount"`
	Subtotal      json.Number        `json:"subtotal"`
	TotalDiscount json.Number        `json:"totalDiscount"`
	ShippingCost  json.Number        `json:"shippingCost"`
	TotalCost     json.Number        `json:"totalCost"`
}

type addItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func toCartResponse(s *cart.Summary) CartResponse {
	resp := CartResponse{
		Items:         make([]CartLineResponse, 0, len(s.Lines)),
		ItemCount:     s.ItemCount,
		Subtotal:      utils.Money(s.Totals.Subtotal),
		TotalDiscount: utils.Money(s.Totals.TotalDiscount),
		ShippingCost:  utils.Money(s.Totals.ShippingCost),
		TotalCost:     utils.Money(s.Totals.GrandTotal),
	}

	for _, l := range s.Lines {
		resp.Items = append(resp.Items, CartLineResponse{
			ProductID:      l.ProductID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPrice:      utils.Money(l.UnitPrice),
			StockAvailable: l.StockAvailable,
			Discount:       utils.Money(l.Priced.DiscountAmount),
			FinalPrice:     utils.Money(l.Priced.NetAmount),
		})
	}

	return resp
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), customerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toCartResponse(summary))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.svc.AddItem(r.Context(), cart.AddItemParams{
		CustomerID: customerID(r),
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"productId": item.ProductID,
		"quantity":  item.Quantity,
	})
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ToUint(chi.URLParam(r, "productID"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	err = h.svc.UpdateQuantity(r.Context(), cart.UpdateQuantityParams{
		CustomerID: customerID(r),
		ProductID:  productID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ToUint(chi.URLParam(r, "productID"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoveItem(r.Context(), customerID(r), productID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context(), customerID(r)); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
