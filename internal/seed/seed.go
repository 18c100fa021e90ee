package seed

import (
	"context"
	"fmt"

	"category-api/internal/repository/category"
)

// Apply writes the built-in category list to the store. It is idempotent:
// existing rows keep their name and take the built-in position.
func Apply(ctx context.Context, w category.Writer) (int, error) {
	defaults := category.Default()
	for _, c := range defaults {
		if _, err := w.Upsert(ctx, c); err != nil {
			return 0, fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
	}
	return len(defaults), nil
}
