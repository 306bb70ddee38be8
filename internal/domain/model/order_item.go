package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 購入時点の価格を保存する。商品価格の変更には追従しない
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Color     string          `gorm:"type:varchar(50);not null" json:"color"`
	Size      Size            `gorm:"type:varchar(5);not null" json:"size"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
