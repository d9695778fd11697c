package base

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository содержит общий пул pgx и хелперы запросов для хранилищ.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт базовый репозиторий поверх пула
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// QueryRow выполняет запрос, возвращающий одну строку
func (r *Repository) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return r.pool.QueryRow(ctx, query, args...)
}

// ExecAffected выполняет команду и возвращает число затронутых строк.
func (r *Repository) ExecAffected(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// IsNotFound проверяет, что запрос не нашёл строк
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
