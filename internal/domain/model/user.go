package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleCashier Role = "cashier"
	RoleManager Role = "manager"
)

type User struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName     string         `gorm:"type:varchar(55);not null" json:"first_name"`
	MiddleName    *string        `gorm:"type:varchar(55)" json:"middle_name"`
	LastName      string         `gorm:"type:varchar(55);not null" json:"last_name"`
	Age           int            `gorm:"not null" json:"age"`
	Address       string         `gorm:"type:varchar(255);not null" json:"address"`
	ContactNumber string         `gorm:"type:varchar(55);not null" json:"contact_number"`
	Email         string         `gorm:"type:varchar(255);not null" json:"email"`
	PasswordHash  string         `gorm:"column:password_hash;not null" json:"-"`
	Role          Role           `gorm:"type:varchar(20);not null" json:"role"`
	LastLoginAt   *time.Time     `json:"last_login_at"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
