package request

import (
	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase"
)

type OrderItemRequest struct {
	ArticleID string  `json:"articleId"`
	Quantity  float64 `json:"quantity"`
}

// CreateOrderRequest is the POST /order payload. A status field is accepted
// nowhere here: new orders always start at the first workflow step. Any
// pricing the client sends with an item is discarded server-side.
type CreateOrderRequest struct {
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	CustomerID    string             `json:"customerId"`
	Service       string             `json:"service"`
	PickupMode    string             `json:"pickupMode"`
	PaymentMethod string             `json:"paymentMethod"`
	CustomerType  string             `json:"customerType"`
	OrderNotes    string             `json:"orderNotes"`
	Items         []OrderItemRequest `json:"items"`
}

func (r CreateOrderRequest) ToInput() usecase.OrderInput {
	return usecase.OrderInput{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		CustomerID:    r.CustomerID,
		Service:       r.Service,
		PickupMode:    entities.PickupMode(r.PickupMode),
		PaymentMethod: entities.PaymentMethod(r.PaymentMethod),
		CustomerType:  entities.CustomerType(r.CustomerType),
		OrderNotes:    r.OrderNotes,
		Items:         toItemInputs(r.Items),
	}
}

// UpdateOrderRequest is the PUT /order/:id payload. Absent fields stay
// untouched; unknown fields are ignored by the JSON decoder.
type UpdateOrderRequest struct {
	Name          *string             `json:"name"`
	Service       *string             `json:"service"`
	Address       *string             `json:"address"`
	Email         *string             `json:"email"`
	Phone         *string             `json:"phone"`
	Status        *string             `json:"status"`
	Items         *[]OrderItemRequest `json:"items"`
	PaymentMethod *string             `json:"paymentMethod"`
	CustomerType  *string             `json:"customerType"`
	PickupMode    *string             `json:"pickupMode"`
	OrderNotes    *string             `json:"orderNotes"`
}

func (r UpdateOrderRequest) ToUpdate() usecase.OrderUpdate {
	upd := usecase.OrderUpdate{
		Name:       r.Name,
		Service:    r.Service,
		Address:    r.Address,
		Email:      r.Email,
		Phone:      r.Phone,
		OrderNotes: r.OrderNotes,
	}
	if r.Status != nil {
		s := entities.OrderStatus(*r.Status)
		upd.Status = &s
	}
	if r.Items != nil {
		items := toItemInputs(*r.Items)
		upd.Items = &items
	}
	if r.PaymentMethod != nil {
		m := entities.PaymentMethod(*r.PaymentMethod)
		upd.PaymentMethod = &m
	}
	if r.CustomerType != nil {
		ct := entities.CustomerType(*r.CustomerType)
		upd.CustomerType = &ct
	}
	if r.PickupMode != nil {
		pm := entities.PickupMode(*r.PickupMode)
		upd.PickupMode = &pm
	}
	return upd
}

// UpdateOrderStatusRequest is the PATCH /order/:id/status payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func toItemInputs(items []OrderItemRequest) []usecase.ItemInput {
	out := make([]usecase.ItemInput, len(items))
	for i, it := range items {
		out[i] = usecase.ItemInput{ArticleID: it.ArticleID, Quantity: it.Quantity}
	}
	return out
}
