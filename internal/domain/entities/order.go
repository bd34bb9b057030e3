package entities

import (
	"math"
	"time"
)

// OrderStatus represents the workflow state of a laundry order.
//
// Domain notes:
//   - The workflow is a fixed five-step sequence (placed -> accepted ->
//     in progress -> done -> handed off), but any status in the set may be
//     assigned from any other; the UI drives transitions, the server only
//     checks set membership.
//   - "Oddano" is the practical terminal state: archived views list it and
//     active views exclude it.

type OrderStatus string

const (
	OrderStatusNaroceno OrderStatus = "Naročeno"
	OrderStatusSprejeto OrderStatus = "Sprejeto"
	OrderStatusVDelu    OrderStatus = "V delu"
	OrderStatusKoncano  OrderStatus = "Končano"
	OrderStatusOddano   OrderStatus = "Oddano"
)

// StatusOptions is the full ordered workflow set. Kept as a slice because
// ordering matters for dropdown rendering on clients.
var StatusOptions = []OrderStatus{
	OrderStatusNaroceno,
	OrderStatusSprejeto,
	OrderStatusVDelu,
	OrderStatusKoncano,
	OrderStatusOddano,
}

func (s OrderStatus) Valid() bool {
	for _, o := range StatusOptions {
		if s == o {
			return true
		}
	}
	return false
}

// StatusChange is one entry of an order's append-only status history.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// OrderItem is a resolved line item: a snapshot of the referenced article's
// catalog data at the time the order was created or last edited. The snapshot
// is frozen — deleting or repricing the article later must not touch it.
type OrderItem struct {
	ArticleID  string  `json:"articleId"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
	VATPercent float64 `json:"vatPercent"`
	FinalPrice float64 `json:"finalPrice"`
	Quantity   float64 `json:"quantity"`
	LineTotal  float64 `json:"lineTotal"`
}

// Order is the central aggregate persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - orderNumber carries a per-month sequence (YYYY-MM-NNN) and is unique.
//
// Concurrency:
//   - Version backs the conditional-update check on every write; concurrent
//     editors lose with a conflict instead of silently overwriting each other.
type Order struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"orderNumber"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	CustomerID    string         `json:"customerId,omitempty"`
	Service       string         `json:"service"`
	PickupMode    PickupMode     `json:"pickupMode"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	CustomerType  CustomerType   `json:"customerType"`
	Status        OrderStatus    `json:"status"`
	StatusHistory []StatusChange `json:"statusHistory"`
	Items         []OrderItem    `json:"items"`
	OrderNotes    string         `json:"orderNotes,omitempty"`
	Version       int64          `json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Total sums the line totals of all items, rounded to cents.
func (o Order) Total() float64 {
	total := 0.0
	for _, it := range o.Items {
		total += it.LineTotal
	}
	return math.Round(total*100) / 100
}
