package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文は作成後に更新しない
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber    string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"order_number"`
	OriginalTotal  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"original_total"`
	DiscountType   *string         `gorm:"type:varchar(50)" json:"discount_type"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"discount_amount"`
	FinalAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"final_amount"`
	AmountPaid     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount_paid"`
	ChangeDue      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"change_due"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
