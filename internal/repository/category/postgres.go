package category

import (
	"context"
	"log"

	"category-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// PostgresRepository is a Repository that can also write categories.
type PostgresRepository interface {
	Repository
	Writer
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) PostgresRepository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT name, position
FROM categories
ORDER BY position ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("list categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Position); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, position)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE
SET position = EXCLUDED.position
RETURNING name, position
`
	var out domain.Category
	if err := r.pool.QueryRow(ctx, q, c.Name, c.Position).Scan(&out.Name, &out.Position); err != nil {
		return nil, err
	}
	return &out, nil
}
