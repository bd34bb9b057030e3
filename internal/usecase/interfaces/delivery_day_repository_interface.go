package interfaces

import (
	"context"

	"cistilnica/internal/domain/entities"
)

// IDeliveryDayRepository abstracts DynamoDB persistence for DeliveryDay.
//
// Save is a wholesale upsert: the stored document for the date is replaced
// with the given one, existing attributes are not merged.
type IDeliveryDayRepository interface {
	Save(ctx context.Context, d entities.DeliveryDay) (entities.DeliveryDay, error)
	GetByDate(ctx context.Context, date string) (entities.DeliveryDay, error)
	List(ctx context.Context) ([]entities.DeliveryDay, error)
}
