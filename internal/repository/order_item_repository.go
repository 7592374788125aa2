package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	// 商品ごとの累計販売数（レポート用）
	SumQuantityByProduct(ctx context.Context) (map[int64]int64, error)
}
