package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Freeeeeet/classbot/internal/model"

	// драйвер "sqlite" на чистом Go
	_ "modernc.org/sqlite"
)

// OpenSQLite открывает (или создаёт) файл базы и выставляет pragma.
// Схему накатывает мигратор.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// один писатель
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}
	return db, nil
}

// SQLiteGroupStore хранит привязки в файле SQLite.
type SQLiteGroupStore struct {
	db *sql.DB
}

func NewSQLiteGroupStore(db *sql.DB) *SQLiteGroupStore {
	return &SQLiteGroupStore{db: db}
}

// Get получает привязку пользователя
func (r *SQLiteGroupStore) Get(ctx context.Context, userID int64) (*model.UserGroup, error) {
	query := `
		SELECT user_id, group_name, CAST(strftime('%s', updated_at) AS INTEGER)
		FROM user_groups
		WHERE user_id = ?
	`

	var (
		ug      model.UserGroup
		updated int64
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&ug.UserID, &ug.Group, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user group: %w", err)
	}
	ug.UpdatedAt = time.Unix(updated, 0).UTC()

	return &ug, nil
}

// Set создаёт или обновляет привязку
func (r *SQLiteGroupStore) Set(ctx context.Context, userID int64, group string) error {
	query := `
		INSERT INTO user_groups (user_id, group_name)
		VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET group_name = excluded.group_name, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, userID, group); err != nil {
		return fmt.Errorf("set user group: %w", err)
	}
	return nil
}

// Count подсчитывает количество привязанных пользователей
func (r *SQLiteGroupStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_groups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user groups: %w", err)
	}
	return n, nil
}

// Close закрывает соединение с базой
func (r *SQLiteGroupStore) Close() error {
	return r.db.Close()
}
