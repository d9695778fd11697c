package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/classbot/internal/model"
	"github.com/Freeeeeet/classbot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGroupStore хранит привязки в PostgreSQL.
type PostgresGroupStore struct {
	*base.Repository
}

func NewPostgresGroupStore(pool *pgxpool.Pool) *PostgresGroupStore {
	return &PostgresGroupStore{Repository: base.NewRepository(pool)}
}

// Get получает привязку пользователя
func (r *PostgresGroupStore) Get(ctx context.Context, userID int64) (*model.UserGroup, error) {
	query := `
		SELECT user_id, group_name, updated_at
		FROM user_groups
		WHERE user_id = $1
	`

	var ug model.UserGroup
	err := r.QueryRow(ctx, query, userID).Scan(&ug.UserID, &ug.Group, &ug.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user group: %w", err)
	}

	return &ug, nil
}

// Set создаёт или обновляет привязку
func (r *PostgresGroupStore) Set(ctx context.Context, userID int64, group string) error {
	query := `
		INSERT INTO user_groups (user_id, group_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET group_name = EXCLUDED.group_name, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.ExecAffected(ctx, query, userID, group); err != nil {
		return fmt.Errorf("set user group: %w", err)
	}
	return nil
}

// Count подсчитывает количество привязанных пользователей
func (r *PostgresGroupStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.QueryRow(ctx, `SELECT COUNT(*) FROM user_groups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user groups: %w", err)
	}
	return n, nil
}

// Close ничего не делает: пулом владеет приложение.
func (r *PostgresGroupStore) Close() error { return nil }
