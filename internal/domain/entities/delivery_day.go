package entities

// DeliveryDay is a staff-maintained summary row for one calendar date of
// delivery driving: distance, time and which orders went out.
//
// Storage model (DynamoDB):
//   - PK: date (YYYY-MM-DD)
//
// Rows are upserted wholesale: a save replaces the whole document for the
// date, nothing is merged.
type DeliveryDay struct {
	Date       string   `json:"date"`
	Kilometers float64  `json:"kilometers"`
	Minutes    int64    `json:"minutes"`
	OrderIDs   []string `json:"orderIds"`
}
