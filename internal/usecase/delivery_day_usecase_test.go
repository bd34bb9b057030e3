package usecase

import (
	"context"
	"errors"
	"testing"

	"cistilnica/internal/domain/entities"
	mock_interfaces "cistilnica/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newDeliveryDayUseCaseForTest(t *testing.T) (*DeliveryDayUseCase, *mock_interfaces.MockIDeliveryDayRepository, *mock_interfaces.MockIEventBroadcaster) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIDeliveryDayRepository(ctrl)
	broadcaster := mock_interfaces.NewMockIEventBroadcaster(ctrl)
	return NewDeliveryDayUseCase(repo, broadcaster), repo, broadcaster
}

func TestDeliveryDayUseCase_Save(t *testing.T) {
	t.Run("invalid date", func(t *testing.T) {
		uc, _, _ := newDeliveryDayUseCaseForTest(t)
		_, err := uc.Save(context.Background(), DeliveryDayInput{Date: "30.08.2026"})
		if !errors.Is(err, ErrInvalidDeliveryDate) {
			t.Fatalf("expected ErrInvalidDeliveryDate, got %v", err)
		}
	})

	t.Run("full replace upsert", func(t *testing.T) {
		uc, repo, broadcaster := newDeliveryDayUseCaseForTest(t)

		repo.EXPECT().Save(gomock.Any(), entities.DeliveryDay{
			Date:       "2026-08-30",
			Kilometers: 42.5,
			Minutes:    90,
			OrderIDs:   []string{"ord-1", "ord-2"},
		}).DoAndReturn(func(_ context.Context, d entities.DeliveryDay) (entities.DeliveryDay, error) {
			return d, nil
		})
		broadcaster.EXPECT().Broadcast("deliveryDaySaved", gomock.Any())

		d, err := uc.Save(context.Background(), DeliveryDayInput{
			Date:       "2026-08-30",
			Kilometers: 42.5,
			Minutes:    90,
			OrderIDs:   []string{"ord-1", " ", "ord-2"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(d.OrderIDs) != 2 {
			t.Fatalf("expected blank ids filtered, got %v", d.OrderIDs)
		}
	})
}

func TestDeliveryDayUseCase_GetByDate(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc, repo, _ := newDeliveryDayUseCaseForTest(t)
		repo.EXPECT().GetByDate(gomock.Any(), "2026-08-30").Return(entities.DeliveryDay{}, nil)
		_, err := uc.GetByDate(context.Background(), "2026-08-30")
		if !errors.Is(err, ErrDeliveryDayNotFound) {
			t.Fatalf("expected ErrDeliveryDayNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		uc, repo, _ := newDeliveryDayUseCaseForTest(t)
		repo.EXPECT().GetByDate(gomock.Any(), "2026-08-30").
			Return(entities.DeliveryDay{Date: "2026-08-30", Kilometers: 10}, nil)
		d, err := uc.GetByDate(context.Background(), "2026-08-30")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Kilometers != 10 {
			t.Fatalf("unexpected result: %+v", d)
		}
	})
}
