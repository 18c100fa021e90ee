package category

import (
	"context"

	"category-api/internal/domain"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// Writer is implemented by stores that can persist categories.
type Writer interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}
