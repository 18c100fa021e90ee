package category

import (
	"context"

	"category-api/internal/domain"
)

var defaultNames = [...]string{"Electronics", "Books", "Clothing"}

// Default returns the built-in category list in display order.
func Default() []domain.Category {
	out := make([]domain.Category, len(defaultNames))
	for i, name := range defaultNames {
		out[i] = domain.Category{Name: name, Position: i}
	}
	return out
}

type staticRepo struct{}

// NewStatic returns a Repository serving the built-in list. It never fails.
func NewStatic() Repository {
	return staticRepo{}
}

func (staticRepo) ListCategories(_ context.Context) ([]domain.Category, error) {
	return Default(), nil
}
