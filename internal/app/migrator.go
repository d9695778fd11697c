package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Freeeeeet/classbot/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Migrator применяет встроенные goose миграции.
type Migrator struct {
	db     *sql.DB
	ownsDB bool
	logger *zap.Logger
}

// NewMigrator работает поверх существующего *sql.DB, которым владеет вызывающий.
func NewMigrator(db *sql.DB, dialect string, logger *zap.Logger) (*Migrator, error) {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}

	return &Migrator{db: db, logger: logger}, nil
}

// NewPostgresMigrator открывает *sql.DB поверх пула pgx для goose.
func NewPostgresMigrator(pool *pgxpool.Pool, logger *zap.Logger) (*Migrator, error) {
	m, err := NewMigrator(stdlib.OpenDBFromPool(pool), DialectPostgres, logger)
	if err != nil {
		return nil, err
	}
	m.ownsDB = true
	return m, nil
}

// Run применяет все новые миграции.
func (mg *Migrator) Run(ctx context.Context) error {
	mg.logger.Info("Applying database migrations...")

	if err := goose.UpContext(ctx, mg.db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := mg.Version(ctx)
	if err != nil {
		return err
	}
	mg.logger.Info("Migrations applied successfully", zap.Int64("version", version))
	return nil
}

// Version возвращает текущую версию схемы
func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// Close закрывает *sql.DB, только если мигратор сам его открыл (пул остаётся).
func (mg *Migrator) Close() error {
	if mg.ownsDB && mg.db != nil {
		return mg.db.Close()
	}
	return nil
}
