package repository

import (
	"context"

	"app/internal/domain/model"
)

type UserRepository interface {
	ListAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	// 見つからない場合は(nil, nil)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	Update(ctx context.Context, u model.User) error
	SoftDelete(ctx context.Context, id int64) error
	UpdateLastLoginAt(ctx context.Context, id int64) error
}
