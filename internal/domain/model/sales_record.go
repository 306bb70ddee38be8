package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 管理画面の売上集計用
type SalesRecord struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64           `gorm:"not null;index" json:"user_id"`
	User       *User           `gorm:"foreignKey:UserID" json:"-"`
	OrderID    int64           `gorm:"not null;index" json:"order_id"`
	Order      *Order          `gorm:"foreignKey:OrderID" json:"-"`
	DateOfSale time.Time       `gorm:"not null;index" json:"date_of_sale"`
	BuyerName  string          `gorm:"type:varchar(255);not null" json:"buyer_name"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
