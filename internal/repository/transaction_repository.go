package repository

import (
	"context"

	"app/internal/domain/model"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.Transaction, error)
}
