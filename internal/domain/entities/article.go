package entities

import "time"

// Article is a priced catalog item (one unit of laundry work: a shirt, a
// duvet, a kilogram of wash).
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary representation:
//   - Price is the net price; FinalPrice is derived server-side as
//     round2(price * (1 + vatPercent/100)) and is never accepted from a
//     caller.
//
// OwnerCustomerID optionally pins an article to one customer's private price
// list; empty means the article is in the shared catalog.
type Article struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Unit            string    `json:"unit"`
	Price           float64   `json:"price"`
	VATPercent      float64   `json:"vatPercent"`
	FinalPrice      float64   `json:"finalPrice"`
	UsageCount      int64     `json:"usageCount"`
	OwnerCustomerID string    `json:"ownerCustomerId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
