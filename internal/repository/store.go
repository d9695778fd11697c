package repository

import (
	"context"

	"github.com/Freeeeeet/classbot/internal/model"
)

// GroupStore хранит привязки пользователь → группа. Get возвращает nil, nil,
// если привязки нет.
type GroupStore interface {
	Get(ctx context.Context, userID int64) (*model.UserGroup, error)
	Set(ctx context.Context, userID int64, group string) error
	Count(ctx context.Context) (int, error)
	Close() error
}
