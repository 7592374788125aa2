package model

import "time"

// 顧客アンケート（1〜5の評価と任意コメント）
type Survey struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   *string   `gorm:"type:varchar(255)" json:"comment"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
