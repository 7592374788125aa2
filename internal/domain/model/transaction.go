package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypeNone    DiscountType = "none"
	DiscountTypeSenior  DiscountType = "senior"
	DiscountTypeStudent DiscountType = "student"
	DiscountTypePWD     DiscountType = "pwd"
)

// 割引適用後の売上記録。
// 割引はOrderのoriginal_totalから再計算する（Orderの割引欄とは独立）。
type Transaction struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        int64           `gorm:"not null;index" json:"order_id"`
	DiscountType   DiscountType    `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	AmountPaid     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount_paid"`
	ChangeDue      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"change_due"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
