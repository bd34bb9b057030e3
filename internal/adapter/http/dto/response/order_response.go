package response

import (
	"time"

	"cistilnica/internal/domain/entities"
)

type OrderItemResponse struct {
	ArticleID  string  `json:"articleId"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
	VATPercent float64 `json:"vatPercent"`
	FinalPrice float64 `json:"finalPrice"`
	Quantity   float64 `json:"quantity"`
	LineTotal  float64 `json:"lineTotal"`
}

type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type OrderResponse struct {
	ID            string                 `json:"id"`
	OrderNumber   string                 `json:"orderNumber"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Phone         string                 `json:"phone"`
	Address       string                 `json:"address"`
	CustomerID    string                 `json:"customerId,omitempty"`
	Service       string                 `json:"service"`
	PickupMode    string                 `json:"pickupMode"`
	PaymentMethod string                 `json:"paymentMethod"`
	CustomerType  string                 `json:"customerType"`
	Status        string                 `json:"status"`
	StatusHistory []StatusChangeResponse `json:"statusHistory"`
	Items         []OrderItemResponse    `json:"items"`
	OrderNotes    string                 `json:"orderNotes,omitempty"`
	Total         float64                `json:"total"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func FromOrder(o entities.Order) OrderResponse {
	history := make([]StatusChangeResponse, len(o.StatusHistory))
	for i, h := range o.StatusHistory {
		history[i] = StatusChangeResponse{Status: string(h.Status), Timestamp: h.Timestamp}
	}
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ArticleID:  it.ArticleID,
			Name:       it.Name,
			Unit:       it.Unit,
			Price:      it.Price,
			VATPercent: it.VATPercent,
			FinalPrice: it.FinalPrice,
			Quantity:   it.Quantity,
			LineTotal:  it.LineTotal,
		}
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Name:          o.Name,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		CustomerID:    o.CustomerID,
		Service:       o.Service,
		PickupMode:    string(o.PickupMode),
		PaymentMethod: string(o.PaymentMethod),
		CustomerType:  string(o.CustomerType),
		Status:        string(o.Status),
		StatusHistory: history,
		Items:         items,
		OrderNotes:    o.OrderNotes,
		Total:         o.Total(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = FromOrder(o)
	}
	return out
}
