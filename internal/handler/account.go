package handler

import (
	"net/http"
	"time"

	"storefront-be/internal/customer"
	"storefront-be/internal/utils"
)

type AccountHandler struct {
	svc customer.Service
}

func NewAccountHandler(svc customer.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

type ShippingDetailsResponse struct {
	FullName  string    `json:"fullName"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *AccountHandler) ShippingDetails(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetShippingDetails(r.Context(), customerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toShippingDetailsResponse(d))
}

func toShippingDetailsResponse(d *customer.ShippingDetails) ShippingDetailsResponse {
	return ShippingDetailsResponse{
		FullName:  d.FullName,
		Address:   d.Address,
		Phone:     d.Phone,
		UpdatedAt: d.UpdatedAt,
	}
}
