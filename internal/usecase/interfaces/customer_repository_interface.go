package interfaces

import (
	"context"

	"cistilnica/internal/domain/entities"
)

// ICustomerRepository abstracts DynamoDB persistence for Customer.
type ICustomerRepository interface {
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
	Update(ctx context.Context, c entities.Customer) (entities.Customer, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementUsage(ctx context.Context, id string) error
}
