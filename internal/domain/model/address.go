package model

import "time"

// 配送先住所。1ユーザーにつき1件
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	StreetAddress string `gorm:"type:varchar(255);not null" json:"street_address"`
	City          string `gorm:"type:varchar(255);not null" json:"city"`
	State         string `gorm:"type:varchar(100)" json:"state"`
	PostalCode    string `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country       string `gorm:"type:varchar(100);not null" json:"country"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
