package order

import (
	"encoding/json"
	"strconv"
	"time"

	"storefront-be/internal/payment"
	"storefront-be/internal/utils"
)

type Response struct {
	OrderID        uint        `json:"orderId"`
	Status         Status      `json:"status"`
	TotalAmount    json.Number `json:"totalAmount"`
	ShippingStatus string      `json:"shippingStatus"`
	CreatedAt      time.Time   `json:"createdAt"`
}

type LineResponse struct {
	ProductID       uint        `json:"productId"`
	ProductName     string      `json:"productName"`
	Quantity        int         `json:"quantity"`
	PriceAtPurchase json.Number `json:"priceAtPurchase"`
}

type PaymentResponse struct {
	Method       string         `json:"method"`
	Amount       json.Number    `json:"amount"`
	Status       payment.Status `json:"status"`
	Instructions []string       `json:"instructions"`
}

type ShipmentResponse struct {
	Status         ShippingStatus `json:"status"`
	TrackingNumber string         `json:"trackingNumber,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type DetailResponse struct {
	Response
	Items    []LineResponse    `json:"items"`
	Payment  *PaymentResponse  `json:"payment,omitempty"`
	Shipment *ShipmentResponse `json:"shipment,omitempty"`
}

type StatsResponse struct {
	TotalOrders     int `json:"totalOrders"`
	CompletedOrders int `json:"completedOrders"`
}

type DashboardResponse struct {
	Stats        StatsResponse `json:"stats"`
	RecentOrders []Response    `json:"recentOrders"`
}

func ToDashboardResponse(d *Dashboard) DashboardResponse {
	return DashboardResponse{
		Stats: StatsResponse{
			TotalOrders:     d.TotalOrders,
			CompletedOrders: d.DeliveredOrders,
		},
		RecentOrders: ToResponses(d.Recent),
	}
}

func ToResponse(o Order) Response {
	return Response{
		OrderID:        o.ID,
		Status:         o.Status,
		TotalAmount:    utils.Money(o.TotalAmount),
		ShippingStatus: string(o.ShippingStatus),
		CreatedAt:      o.CreatedAt,
	}
}

func ToResponses(orders []Order) []Response {
	out := make([]Response, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToResponse(o))
	}
	return out
}

func ToDetailResponse(d *Detail) DetailResponse {
	resp := DetailResponse{
		Response: ToResponse(d.Order),
		Items:    make([]LineResponse, 0, len(d.Lines)),
	}

	for _, l := range d.Lines {
		resp.Items = append(resp.Items, LineResponse{
			ProductID:       l.ProductID,
			ProductName:     l.ProductName,
			Quantity:        l.Quantity,
			PriceAtPurchase: utils.Money(l.PriceAtPurchase),
		})
	}

	if p := d.Payment; p != nil {
		amount := utils.Money(p.Amount)
		resp.Payment = &PaymentResponse{
			Method: p.Method,
			Amount: amount,
			Status: p.Status,
			Instructions: payment.InjectVariables(
				payment.GetInstructions(p.Method),
				payment.InstructionVars{
					"amount":   amount.String(),
					"order_id": strconv.FormatUint(uint64(d.ID), 10),
				},
			),
		}
	}

	if s := d.Shipment; s != nil {
		resp.Shipment = &ShipmentResponse{
			Status:         s.Status,
			TrackingNumber: utils.PtrString(s.TrackingNumber),
			UpdatedAt:      s.UpdatedAt,
		}
	}

	return resp
}
