package request

import (
	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase"
)

type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
	Type          string `json:"type"`
	PaymentMethod string `json:"paymentMethod"`
	PickupMode    string `json:"pickupMode"`
}

func (r CreateCustomerRequest) ToInput() usecase.CustomerInput {
	return usecase.CustomerInput{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		Notes:         r.Notes,
		Type:          entities.CustomerType(r.Type),
		PaymentMethod: entities.PaymentMethod(r.PaymentMethod),
		PickupMode:    entities.PickupMode(r.PickupMode),
	}
}

type UpdateCustomerRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
	Type          *string `json:"type"`
	PaymentMethod *string `json:"paymentMethod"`
	PickupMode    *string `json:"pickupMode"`
}

func (r UpdateCustomerRequest) ToUpdate() usecase.CustomerUpdate {
	upd := usecase.CustomerUpdate{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Notes:   r.Notes,
	}
	if r.Type != nil {
		t := entities.CustomerType(*r.Type)
		upd.Type = &t
	}
	if r.PaymentMethod != nil {
		m := entities.PaymentMethod(*r.PaymentMethod)
		upd.PaymentMethod = &m
	}
	if r.PickupMode != nil {
		pm := entities.PickupMode(*r.PickupMode)
		upd.PickupMode = &pm
	}
	return upd
}
