package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"cistilnica/internal/domain/entities"
	"cistilnica/internal/domain/pricing"
	"cistilnica/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrArticleNotFound    = errors.New("article not found")
	ErrInvalidArticleID   = errors.New("invalid article id")
	ErrInvalidArticleName = errors.New("invalid article name")
	ErrInvalidArticleUnit = errors.New("invalid article unit")
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrNegativeVAT        = errors.New("vat percent must not be negative")
)

// ArticleInput carries the caller-settable article fields. A final price is
// deliberately absent: it is always derived server-side, a client-supplied
// value is never trusted.
type ArticleInput struct {
	Name            string
	Unit            string
	Price           float64
	VATPercent      float64
	OwnerCustomerID string
}

// ArticleUpdate is a typed partial update; nil leaves the field alone.
// Changing price or vatPercent recomputes the final price either way.
type ArticleUpdate struct {
	Name            *string
	Unit            *string
	Price           *float64
	VATPercent      *float64
	OwnerCustomerID *string
}

type IArticleUseCase interface {
	Create(ctx context.Context, in ArticleInput) (entities.Article, error)
	GetByID(ctx context.Context, id string) (entities.Article, error)
	List(ctx context.Context) ([]entities.Article, error)
	Update(ctx context.Context, id string, upd ArticleUpdate) (entities.Article, error)
	Delete(ctx context.Context, id string) error
}

type ArticleUseCase struct {
	repo        interfaces.IArticleRepository
	broadcaster interfaces.IEventBroadcaster
	now         func() time.Time
}

var _ IArticleUseCase = (*ArticleUseCase)(nil)

func NewArticleUseCase(repo interfaces.IArticleRepository, broadcaster interfaces.IEventBroadcaster) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, broadcaster: broadcaster, now: time.Now}
}

func (u *ArticleUseCase) Create(ctx context.Context, in ArticleInput) (entities.Article, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Article{}, ErrInvalidArticleName
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		return entities.Article{}, ErrInvalidArticleUnit
	}
	if in.Price < 0 {
		return entities.Article{}, ErrNegativePrice
	}
	if in.VATPercent < 0 {
		return entities.Article{}, ErrNegativeVAT
	}

	now := u.now().UTC()
	a := entities.Article{
		ID:              uuid.NewString(),
		Name:            name,
		Unit:            unit,
		Price:           in.Price,
		VATPercent:      in.VATPercent,
		FinalPrice:      pricing.FinalPrice(in.Price, in.VATPercent),
		OwnerCustomerID: strings.TrimSpace(in.OwnerCustomerID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := u.repo.Create(ctx, a)
	if err != nil {
		return entities.Article{}, err
	}
	u.broadcaster.Broadcast("articleCreated", created)
	return created, nil
}

func (u *ArticleUseCase) GetByID(ctx context.Context, id string) (entities.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Article{}, ErrInvalidArticleID
	}
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Article{}, err
	}
	if a.ID == "" {
		return entities.Article{}, ErrArticleNotFound
	}
	return a, nil
}

func (u *ArticleUseCase) List(ctx context.Context) ([]entities.Article, error) {
	return u.repo.List(ctx)
}

func (u *ArticleUseCase) Update(ctx context.Context, id string, upd ArticleUpdate) (entities.Article, error) {
	a, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Article{}, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return entities.Article{}, ErrInvalidArticleName
		}
		a.Name = name
	}
	if upd.Unit != nil {
		unit := strings.TrimSpace(*upd.Unit)
		if unit == "" {
			return entities.Article{}, ErrInvalidArticleUnit
		}
		a.Unit = unit
	}
	if upd.Price != nil {
		if *upd.Price < 0 {
			return entities.Article{}, ErrNegativePrice
		}
		a.Price = *upd.Price
	}
	if upd.VATPercent != nil {
		if *upd.VATPercent < 0 {
			return entities.Article{}, ErrNegativeVAT
		}
		a.VATPercent = *upd.VATPercent
	}
	if upd.OwnerCustomerID != nil {
		a.OwnerCustomerID = strings.TrimSpace(*upd.OwnerCustomerID)
	}

	// Recompute from the stored pair so a caller changing only the price
	// never has to resend the VAT rate.
	a.FinalPrice = pricing.FinalPrice(a.Price, a.VATPercent)
	a.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, a)
	if err != nil {
		return entities.Article{}, err
	}
	if updated.ID == "" {
		return entities.Article{}, ErrArticleNotFound
	}
	u.broadcaster.Broadcast("articleUpdated", updated)
	return updated, nil
}

// Delete removes the catalog entry. Orders that reference the article keep
// their frozen item snapshots untouched.
func (u *ArticleUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidArticleID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrArticleNotFound
	}
	u.broadcaster.Broadcast("articleDeleted", map[string]string{"id": id})
	return nil
}
