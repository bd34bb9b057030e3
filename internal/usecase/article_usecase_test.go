package usecase

import (
	"context"
	"errors"
	"testing"

	"cistilnica/internal/domain/entities"
	mock_interfaces "cistilnica/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newArticleUseCaseForTest(t *testing.T) (*ArticleUseCase, *mock_interfaces.MockIArticleRepository, *mock_interfaces.MockIEventBroadcaster) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIArticleRepository(ctrl)
	broadcaster := mock_interfaces.NewMockIEventBroadcaster(ctrl)
	return NewArticleUseCase(repo, broadcaster), repo, broadcaster
}

func TestArticleUseCase_Create(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		uc, _, _ := newArticleUseCaseForTest(t)
		_, err := uc.Create(context.Background(), ArticleInput{Name: "  ", Unit: "kos"})
		if !errors.Is(err, ErrInvalidArticleName) {
			t.Fatalf("expected ErrInvalidArticleName, got %v", err)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		uc, _, _ := newArticleUseCaseForTest(t)
		_, err := uc.Create(context.Background(), ArticleInput{Name: "Srajca", Unit: "kos", Price: -1})
		if !errors.Is(err, ErrNegativePrice) {
			t.Fatalf("expected ErrNegativePrice, got %v", err)
		}
	})

	t.Run("final price derived server-side", func(t *testing.T) {
		uc, repo, broadcaster := newArticleUseCaseForTest(t)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a entities.Article) (entities.Article, error) {
				if a.FinalPrice != 61.00 {
					t.Fatalf("expected finalPrice 61.00, got %v", a.FinalPrice)
				}
				return a, nil
			})
		broadcaster.EXPECT().Broadcast("articleCreated", gomock.Any())

		a, err := uc.Create(context.Background(), ArticleInput{Name: "Plašč", Unit: "kos", Price: 50, VATPercent: 22})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.UsageCount != 0 {
			t.Fatalf("expected zero usage count, got %d", a.UsageCount)
		}
	})
}

func TestArticleUseCase_Update(t *testing.T) {
	stored := entities.Article{ID: "art-1", Name: "Srajca", Unit: "kos", Price: 50, VATPercent: 22, FinalPrice: 61}

	t.Run("not found", func(t *testing.T) {
		uc, repo, _ := newArticleUseCaseForTest(t)
		repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Article{}, nil)
		_, err := uc.Update(context.Background(), "nope", ArticleUpdate{})
		if !errors.Is(err, ErrArticleNotFound) {
			t.Fatalf("expected ErrArticleNotFound, got %v", err)
		}
	})

	t.Run("price-only change recomputes without resending vat", func(t *testing.T) {
		uc, repo, broadcaster := newArticleUseCaseForTest(t)

		repo.EXPECT().GetByID(gomock.Any(), "art-1").Return(stored, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a entities.Article) (entities.Article, error) {
				if a.FinalPrice != 73.20 {
					t.Fatalf("expected recomputed finalPrice 73.20, got %v", a.FinalPrice)
				}
				if a.VATPercent != 22 {
					t.Fatalf("vat must stay at 22, got %v", a.VATPercent)
				}
				return a, nil
			})
		broadcaster.EXPECT().Broadcast("articleUpdated", gomock.Any())

		price := 60.0
		if _, err := uc.Update(context.Background(), "art-1", ArticleUpdate{Price: &price}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestArticleUseCase_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc, repo, _ := newArticleUseCaseForTest(t)
		repo.EXPECT().Delete(gomock.Any(), "nope").Return(false, nil)
		if err := uc.Delete(context.Background(), "nope"); !errors.Is(err, ErrArticleNotFound) {
			t.Fatalf("expected ErrArticleNotFound, got %v", err)
		}
	})

	t.Run("broadcasts deletion", func(t *testing.T) {
		uc, repo, broadcaster := newArticleUseCaseForTest(t)
		repo.EXPECT().Delete(gomock.Any(), "art-1").Return(true, nil)
		broadcaster.EXPECT().Broadcast("articleDeleted", map[string]string{"id": "art-1"})
		if err := uc.Delete(context.Background(), "art-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
