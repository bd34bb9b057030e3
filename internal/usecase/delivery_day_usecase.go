package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase/interfaces"
)

var (
	ErrDeliveryDayNotFound = errors.New("delivery day not found")
	ErrInvalidDeliveryDate = errors.New("invalid delivery date")
)

type DeliveryDayInput struct {
	Date       string
	Kilometers float64
	Minutes    int64
	OrderIDs   []string
}

type IDeliveryDayUseCase interface {
	Save(ctx context.Context, in DeliveryDayInput) (entities.DeliveryDay, error)
	GetByDate(ctx context.Context, date string) (entities.DeliveryDay, error)
	List(ctx context.Context) ([]entities.DeliveryDay, error)
}

type DeliveryDayUseCase struct {
	repo        interfaces.IDeliveryDayRepository
	broadcaster interfaces.IEventBroadcaster
}

var _ IDeliveryDayUseCase = (*DeliveryDayUseCase)(nil)

func NewDeliveryDayUseCase(repo interfaces.IDeliveryDayRepository, broadcaster interfaces.IEventBroadcaster) *DeliveryDayUseCase {
	return &DeliveryDayUseCase{repo: repo, broadcaster: broadcaster}
}

// Save upserts the summary row for one date, replacing whatever was stored
// before. Staff enter these by hand, nothing is derived from orders.
func (u *DeliveryDayUseCase) Save(ctx context.Context, in DeliveryDayInput) (entities.DeliveryDay, error) {
	date := strings.TrimSpace(in.Date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return entities.DeliveryDay{}, ErrInvalidDeliveryDate
	}

	orderIDs := make([]string, 0, len(in.OrderIDs))
	for _, id := range in.OrderIDs {
		if id = strings.TrimSpace(id); id != "" {
			orderIDs = append(orderIDs, id)
		}
	}

	saved, err := u.repo.Save(ctx, entities.DeliveryDay{
		Date:       date,
		Kilometers: in.Kilometers,
		Minutes:    in.Minutes,
		OrderIDs:   orderIDs,
	})
	if err != nil {
		return entities.DeliveryDay{}, err
	}
	u.broadcaster.Broadcast("deliveryDaySaved", saved)
	return saved, nil
}

func (u *DeliveryDayUseCase) GetByDate(ctx context.Context, date string) (entities.DeliveryDay, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return entities.DeliveryDay{}, ErrInvalidDeliveryDate
	}
	d, err := u.repo.GetByDate(ctx, date)
	if err != nil {
		return entities.DeliveryDay{}, err
	}
	if d.Date == "" {
		return entities.DeliveryDay{}, ErrDeliveryDayNotFound
	}
	return d, nil
}

func (u *DeliveryDayUseCase) List(ctx context.Context) ([]entities.DeliveryDay, error) {
	return u.repo.List(ctx)
}
