package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type TransactionGormRepository struct {
	db *gorm.DB
}

func NewTransactionGormRepository(db *gorm.DB) *TransactionGormRepository {
	return &TransactionGormRepository{db: db}
}

func (r *TransactionGormRepository) Create(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

func (r *TransactionGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&txs).Error
	if err != nil {
		return []model.Transaction{}, err
	}
	return txs, nil
}
