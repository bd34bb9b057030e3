package request

import "cistilnica/internal/usecase"

// SaveDeliveryDayRequest is the POST /api/delivery-day payload. The whole
// row for the date is replaced with exactly what is submitted here.
type SaveDeliveryDayRequest struct {
	Date       string   `json:"date" binding:"required"`
	Kilometers float64  `json:"kilometers"`
	Minutes    int64    `json:"minutes"`
	OrderIDs   []string `json:"orderIds"`
}

func (r SaveDeliveryDayRequest) ToInput() usecase.DeliveryDayInput {
	return usecase.DeliveryDayInput{
		Date:       r.Date,
		Kilometers: r.Kilometers,
		Minutes:    r.Minutes,
		OrderIDs:   r.OrderIDs,
	}
}
