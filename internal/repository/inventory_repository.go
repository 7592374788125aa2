package repository

import "context"

// 在庫の読み・確認・減算を1つのクリティカルセクションとして扱う。
// ReserveはTxManagerのトランザクション内でのみ呼ぶこと（単独でcommitしない）。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算。足りなければfalse（副作用なし）。
	Reserve(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	Release(ctx context.Context, productID int64, qty int64) error
}
