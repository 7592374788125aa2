package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 割引種別ごとの固定レート
var discountRates = map[model.DiscountType]decimal.Decimal{
	model.DiscountTypeSenior:  decimal.RequireFromString("0.20"),
	model.DiscountTypeStudent: decimal.RequireFromString("0.15"),
	model.DiscountTypePWD:     decimal.RequireFromString("0.25"),
	model.DiscountTypeNone:    decimal.Zero,
}

// 注文への事後割引適用。在庫には一切触らない。
type TransactionUsecase struct {
	orderRepo repo.OrderRepository
	txRepo    repo.TransactionRepository
}

func NewTransactionUsecase(orderRepo repo.OrderRepository, txRepo repo.TransactionRepository) *TransactionUsecase {
	return &TransactionUsecase{orderRepo: orderRepo, txRepo: txRepo}
}

type ApplyDiscountInput struct {
	OrderID      int64           `json:"order_id"`
	DiscountType string          `json:"discount_type"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
}

func (u *TransactionUsecase) ApplyDiscount(ctx context.Context, in ApplyDiscountInput) (model.Transaction, error) {
	fields := map[string]string{}
	if in.OrderID <= 0 {
		fields["order_id"] = "must be a positive integer"
	}
	dt := model.DiscountType(in.DiscountType)
	rate, known := discountRates[dt]
	if !known {
		fields["discount_type"] = "must be one of: none, senior, student, pwd"
	}
	if in.AmountPaid.IsNegative() {
		fields["amount_paid"] = "must be >= 0"
	}
	if len(fields) > 0 {
		return model.Transaction{}, NewValidationError(fields)
	}

	order, err := u.orderRepo.FindByID(ctx, in.OrderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Transaction{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Transaction{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//割引は注文の割引前合計から計算する（Orderに保存済みの割引とは独立）
	discountAmount := order.OriginalTotal.Mul(rate).Round(2)
	totalAmount := order.OriginalTotal.Sub(discountAmount)
	//支払不足は許容する（changeが負になる）
	changeDue := in.AmountPaid.Sub(totalAmount)

	created, err := u.txRepo.Create(ctx, model.Transaction{
		OrderID:        order.ID,
		DiscountType:   dt,
		DiscountAmount: discountAmount,
		TotalAmount:    totalAmount,
		AmountPaid:     in.AmountPaid,
		ChangeDue:      changeDue,
	})
	if err != nil {
		return model.Transaction{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}
