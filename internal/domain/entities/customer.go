package entities

import "time"

// CustomerType distinguishes private persons from companies for invoicing.
type CustomerType string

const (
	CustomerTypePhysical CustomerType = "physical"
	CustomerTypeCompany  CustomerType = "company"
)

// PaymentMethod is how the customer settles orders.
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodInvoice PaymentMethod = "invoice"
)

// PickupMode is how finished laundry reaches the customer.
type PickupMode string

const (
	PickupModePersonal PickupMode = "personal"
	PickupModeDelivery PickupMode = "delivery"
)

// Customer is a billing/contact profile persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// UsageCount increments by exactly 1 each time a new order names this
// customer as its originator. It never decrements and order edits never
// touch it.
type Customer struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Address       string        `json:"address,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Type          CustomerType  `json:"type"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PickupMode    PickupMode    `json:"pickupMode"`
	UsageCount    int64         `json:"usageCount"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
