package model

import "time"

// カートの明細。同じ商品・色・サイズでも別行として追加される
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;index" json:"cart_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Color     string    `gorm:"type:varchar(50);not null" json:"color"`
	Size      Size      `gorm:"type:varchar(5);not null" json:"size"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
