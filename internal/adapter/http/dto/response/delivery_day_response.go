package response

import "cistilnica/internal/domain/entities"

type DeliveryDayResponse struct {
	Date       string   `json:"date"`
	Kilometers float64  `json:"kilometers"`
	Minutes    int64    `json:"minutes"`
	OrderIDs   []string `json:"orderIds"`
}

func FromDeliveryDay(d entities.DeliveryDay) DeliveryDayResponse {
	return DeliveryDayResponse(d)
}

func FromDeliveryDays(days []entities.DeliveryDay) []DeliveryDayResponse {
	out := make([]DeliveryDayResponse, len(days))
	for i, d := range days {
		out[i] = FromDeliveryDay(d)
	}
	return out
}
