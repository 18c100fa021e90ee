package category

import (
	"context"
	"fmt"

	"category-api/internal/domain"
	"category-api/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

// ListCategories returns category names in repository order. Store failures and
// an empty store are reported as domain.ErrDataUnavailable.
func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: no categories stored", domain.ErrDataUnavailable)
	}

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names, nil
}
