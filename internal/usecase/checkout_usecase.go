package usecase

import (
	"context"
	"errors"
	"fmt"

	"app/internal/domain/model"
	repo "app/internal/repository"
	logx "app/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 会計の中核。検証→1トランザクションで在庫予約＋注文作成。
// どこかで失敗したら全ての書き込み（在庫減算含む）を破棄する。
type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

type CheckoutItemInput struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CheckoutInput struct {
	Items          []CheckoutItemInput `json:"items"`
	OriginalTotal  decimal.Decimal     `json:"original_total"`
	DiscountType   *string             `json:"discount_type"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	FinalAmount    decimal.Decimal     `json:"final_amount"`
	AmountPaid     decimal.Decimal     `json:"amount_paid"`
	ChangeDue      decimal.Decimal     `json:"change_due"`
}

func (u *CheckoutUsecase) Checkout(ctx context.Context, in CheckoutInput) (model.Order, error) {
	if err := validateCheckout(in); err != nil {
		return model.Order{}, err
	}

	var out model.Order

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文作成
		order := model.Order{
			OrderNumber:    "ORD-" + uuid.NewString(),
			OriginalTotal:  in.OriginalTotal,
			DiscountType:   in.DiscountType,
			DiscountAmount: in.DiscountAmount,
			FinalAmount:    in.FinalAmount,
			AmountPaid:     in.AmountPaid,
			ChangeDue:      in.ChangeDue,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		//明細ごとに在庫を確認して減らす
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		for i, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewValidationError(map[string]string{
					fmt.Sprintf("items.%d.product_id", i): "product not found",
				})
			}
			if err != nil {
				return fmt.Errorf("find product %d: %w", it.ProductID, err)
			}

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().Reserve(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return fmt.Errorf("reserve product %d: %w", it.ProductID, err)
			}
			if !ok {
				//エラー表示用に現在の残数を読み直す
				available := p.Quantity
				if p2, err2 := r.Products().FindByID(ctx, it.ProductID); err2 == nil {
					available = p2.Quantity
				}
				return &InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   it.Quantity,
					Available:   available,
				}
			}

			//スナップショット（後から商品名や価格が変わっても明細は当時のまま）
			orderItems = append(orderItems, model.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Price:       it.Price,
			})
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		order.ID = orderID
		order.Items = orderItems
		out = order
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}

	logx.Info().
		Int64("order_id", out.ID).
		Str("order_number", out.OrderNumber).
		Str("final_amount", out.FinalAmount.String()).
		Int("items", len(out.Items)).
		Msg("order created")

	return out, nil
}

// 形と数値制約＋金額の整合性チェック。
// 合計はクライアントの申告値を信用せず、明細から再計算して突き合わせる。
func validateCheckout(in CheckoutInput) error {
	fields := map[string]string{}

	if len(in.Items) == 0 {
		fields["items"] = "must not be empty"
	}

	lineTotal := decimal.Zero
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			fields[fmt.Sprintf("items.%d.product_id", i)] = "must be a positive integer"
		}
		if it.Quantity < 1 {
			fields[fmt.Sprintf("items.%d.quantity", i)] = "must be at least 1"
		}
		if it.Price.IsNegative() {
			fields[fmt.Sprintf("items.%d.price", i)] = "must be >= 0"
		}
		lineTotal = lineTotal.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	if in.OriginalTotal.IsNegative() {
		fields["original_total"] = "must be >= 0"
	}
	if in.DiscountAmount.IsNegative() {
		fields["discount_amount"] = "must be >= 0"
	}
	if in.FinalAmount.IsNegative() {
		fields["final_amount"] = "must be >= 0"
	}
	if in.AmountPaid.IsNegative() {
		fields["amount_paid"] = "must be >= 0"
	}
	if in.ChangeDue.IsNegative() {
		fields["change_due"] = "must be >= 0"
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}

	//整合性（明細合計・割引・釣り銭）
	if !in.OriginalTotal.Equal(lineTotal) {
		fields["original_total"] = "must equal the sum of quantity * price over items"
	}
	if !in.FinalAmount.Equal(in.OriginalTotal.Sub(in.DiscountAmount)) {
		fields["final_amount"] = "must equal original_total - discount_amount"
	}
	if !in.ChangeDue.Equal(in.AmountPaid.Sub(in.FinalAmount)) {
		fields["change_due"] = "must equal amount_paid - final_amount"
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}
