package interfaces

import (
	"context"
	"errors"

	"cistilnica/internal/domain/entities"
)

// ErrVersionConflict is returned by Update when the stored order's version no
// longer matches the version the caller read. The usecase retries the whole
// read-modify-write loop on it.
var ErrVersionConflict = errors.New("order version conflict")

// ErrAlreadyExists is returned by Create when an item with the same key is
// already stored.
var ErrAlreadyExists = errors.New("item already exists")

// OrderFilter narrows List results. Zero value lists everything.
type OrderFilter struct {
	Statuses        []entities.OrderStatus
	ExcludeStatuses []entities.OrderStatus
	PickupMode      entities.PickupMode
}

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Contract details the usecases rely on:
//   - GetByID returns a zero-value Order (empty ID) when nothing is stored.
//   - Create fails when the id already exists.
//   - Update is conditional on the order's Version field and returns
//     ErrVersionConflict when a concurrent writer got there first.
//   - List returns orders sorted newest-first by creation time.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]entities.Order, error)
	Update(ctx context.Context, o entities.Order) (entities.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}
