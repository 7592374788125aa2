package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 在庫数quantityはInventory経由でしか減らさない
type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID   int64           `gorm:"not null;index" json:"category_id"`
	Name         string          `gorm:"type:varchar(15);not null" json:"name"`
	SKU          string          `gorm:"type:varchar(100);not null;column:sku" json:"sku"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity     int64           `gorm:"not null;default:0" json:"quantity"`
	ReorderLevel int64           `gorm:"not null;default:5" json:"reorder_level"`
	Category     *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}
