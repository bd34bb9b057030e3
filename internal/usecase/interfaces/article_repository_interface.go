package interfaces

import (
	"context"

	"cistilnica/internal/domain/entities"
)

// IArticleRepository abstracts DynamoDB persistence for Article.
//
// IncrementUsage is an atomic counter bump; it must not reset any other
// attribute of the stored article.
type IArticleRepository interface {
	Create(ctx context.Context, a entities.Article) (entities.Article, error)
	GetByID(ctx context.Context, id string) (entities.Article, error)
	List(ctx context.Context) ([]entities.Article, error)
	Update(ctx context.Context, a entities.Article) (entities.Article, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementUsage(ctx context.Context, id string) error
}
