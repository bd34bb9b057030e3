package usecase

import (
	"context"
	"errors"
	"testing"

	"cistilnica/internal/domain/entities"
	mock_interfaces "cistilnica/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newCustomerUseCaseForTest(t *testing.T) (*CustomerUseCase, *mock_interfaces.MockICustomerRepository, *mock_interfaces.MockIEventBroadcaster) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockICustomerRepository(ctrl)
	broadcaster := mock_interfaces.NewMockIEventBroadcaster(ctrl)
	return NewCustomerUseCase(repo, broadcaster), repo, broadcaster
}

func TestCustomerUseCase_Create(t *testing.T) {
	t.Run("name required", func(t *testing.T) {
		uc, _, _ := newCustomerUseCaseForTest(t)
		_, err := uc.Create(context.Background(), CustomerInput{Name: " "})
		if !errors.Is(err, ErrInvalidCustomerName) {
			t.Fatalf("expected ErrInvalidCustomerName, got %v", err)
		}
	})

	t.Run("invalid phone", func(t *testing.T) {
		uc, _, _ := newCustomerUseCaseForTest(t)
		_, err := uc.Create(context.Background(), CustomerInput{Name: "Mia", Phone: "xx"})
		if !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("expected ErrInvalidPhone, got %v", err)
		}
	})

	t.Run("defaults and normalization", func(t *testing.T) {
		uc, repo, broadcaster := newCustomerUseCaseForTest(t)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil })
		broadcaster.EXPECT().Broadcast("customerCreated", gomock.Any())

		c, err := uc.Create(context.Background(), CustomerInput{Name: "Mia", Email: " MIA@Example.com "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Email != "mia@example.com" {
			t.Fatalf("expected normalized email, got %q", c.Email)
		}
		if c.Type != entities.CustomerTypePhysical || c.PaymentMethod != entities.PaymentMethodCash || c.PickupMode != entities.PickupModePersonal {
			t.Fatalf("unexpected defaults: %+v", c)
		}
		if c.UsageCount != 0 {
			t.Fatalf("new customer must start at zero usage, got %d", c.UsageCount)
		}
	})
}

func TestCustomerUseCase_Update(t *testing.T) {
	stored := entities.Customer{ID: "cust-1", Name: "Mia", Type: entities.CustomerTypePhysical}

	t.Run("not found", func(t *testing.T) {
		uc, repo, _ := newCustomerUseCaseForTest(t)
		repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Customer{}, nil)
		_, err := uc.Update(context.Background(), "nope", CustomerUpdate{})
		if !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		uc, repo, broadcaster := newCustomerUseCaseForTest(t)

		repo.EXPECT().GetByID(gomock.Any(), "cust-1").Return(stored, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) {
				if c.Name != "Mia" {
					t.Fatalf("name must be untouched, got %q", c.Name)
				}
				if c.Notes != "redna stranka" {
					t.Fatalf("expected updated notes, got %q", c.Notes)
				}
				return c, nil
			})
		broadcaster.EXPECT().Broadcast("customerUpdated", gomock.Any())

		notes := "redna stranka"
		if _, err := uc.Update(context.Background(), "cust-1", CustomerUpdate{Notes: &notes}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCustomerUseCase_Delete(t *testing.T) {
	uc, repo, broadcaster := newCustomerUseCaseForTest(t)
	repo.EXPECT().Delete(gomock.Any(), "cust-1").Return(true, nil)
	broadcaster.EXPECT().Broadcast("customerDeleted", map[string]string{"id": "cust-1"})
	if err := uc.Delete(context.Background(), "cust-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
