package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvalidCustomerID   = errors.New("invalid customer id")
	ErrInvalidCustomerName = errors.New("invalid customer name")
)

type CustomerInput struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	Notes         string
	Type          entities.CustomerType
	PaymentMethod entities.PaymentMethod
	PickupMode    entities.PickupMode
}

type CustomerUpdate struct {
	Name          *string
	Email         *string
	Phone         *string
	Address       *string
	Notes         *string
	Type          *entities.CustomerType
	PaymentMethod *entities.PaymentMethod
	PickupMode    *entities.PickupMode
}

type ICustomerUseCase interface {
	Create(ctx context.Context, in CustomerInput) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
	Update(ctx context.Context, id string, upd CustomerUpdate) (entities.Customer, error)
	Delete(ctx context.Context, id string) error
}

type CustomerUseCase struct {
	repo        interfaces.ICustomerRepository
	broadcaster interfaces.IEventBroadcaster
	now         func() time.Time
}

var _ ICustomerUseCase = (*CustomerUseCase)(nil)

func NewCustomerUseCase(repo interfaces.ICustomerRepository, broadcaster interfaces.IEventBroadcaster) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, broadcaster: broadcaster, now: time.Now}
}

func (u *CustomerUseCase) Create(ctx context.Context, in CustomerInput) (entities.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Customer{}, ErrInvalidCustomerName
	}
	if err := validateContact(in.Email, in.Phone); err != nil {
		return entities.Customer{}, err
	}

	now := u.now().UTC()
	c := entities.Customer{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         normalizeEmail(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Notes:         strings.TrimSpace(in.Notes),
		Type:          defaultCustomerType(in.Type),
		PaymentMethod: defaultPaymentMethod(in.PaymentMethod),
		PickupMode:    defaultPickupMode(in.PickupMode),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return entities.Customer{}, err
	}
	u.broadcaster.Broadcast("customerCreated", created)
	return created, nil
}

func (u *CustomerUseCase) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Customer{}, ErrInvalidCustomerID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	if c.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return c, nil
}

func (u *CustomerUseCase) List(ctx context.Context) ([]entities.Customer, error) {
	return u.repo.List(ctx)
}

func (u *CustomerUseCase) Update(ctx context.Context, id string, upd CustomerUpdate) (entities.Customer, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return entities.Customer{}, ErrInvalidCustomerName
		}
		c.Name = name
	}
	if upd.Email != nil || upd.Phone != nil {
		email, phone := "", ""
		if upd.Email != nil {
			email = *upd.Email
		}
		if upd.Phone != nil {
			phone = *upd.Phone
		}
		if err := validateContact(email, phone); err != nil {
			return entities.Customer{}, err
		}
	}
	if upd.Email != nil {
		c.Email = normalizeEmail(*upd.Email)
	}
	if upd.Phone != nil {
		c.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.Address != nil {
		c.Address = strings.TrimSpace(*upd.Address)
	}
	if upd.Notes != nil {
		c.Notes = strings.TrimSpace(*upd.Notes)
	}
	if upd.Type != nil {
		c.Type = *upd.Type
	}
	if upd.PaymentMethod != nil {
		c.PaymentMethod = *upd.PaymentMethod
	}
	if upd.PickupMode != nil {
		c.PickupMode = *upd.PickupMode
	}
	c.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		return entities.Customer{}, err
	}
	if updated.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	u.broadcaster.Broadcast("customerUpdated", updated)
	return updated, nil
}

// Delete removes the profile. Orders keep their weak reference; they carry
// their own contact snapshot and survive the customer's removal.
func (u *CustomerUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidCustomerID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCustomerNotFound
	}
	u.broadcaster.Broadcast("customerDeleted", map[string]string{"id": id})
	return nil
}
