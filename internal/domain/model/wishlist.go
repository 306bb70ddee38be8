package model

import "time"

type Wishlist struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64          `gorm:"not null;uniqueIndex" json:"user_id"`
	Items     []WishlistItem `gorm:"foreignKey:WishlistID" json:"items"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 同じウィッシュリストに同じ商品は1件まで
type WishlistItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WishlistID int64     `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"wishlist_id"`
	ProductID  int64     `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"product_id"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Color      string    `gorm:"type:varchar(50);not null" json:"color"`
	Size       Size      `gorm:"type:varchar(5);not null" json:"size"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
