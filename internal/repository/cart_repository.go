package repository

import (
	"context"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	// 明細と商品も読み込む
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	AddItem(ctx context.Context, item model.CartItem) (model.CartItem, error)
	// 他人のカートの明細はErrNotFound
	FindItemForUser(ctx context.Context, userID, itemID int64) (model.CartItem, error)
	UpdateItem(ctx context.Context, item model.CartItem) error
	DeleteItemForUser(ctx context.Context, userID, itemID int64) error
	// カートがなくてもエラーにしない
	DeleteByUserID(ctx context.Context, userID int64) error
}

type WishlistRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Wishlist, error)
	FindByUserID(ctx context.Context, userID int64) (model.Wishlist, error)
	// 同じ商品が既にあればErrConflict
	AddItem(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error)
	DeleteItemForUser(ctx context.Context, userID, itemID int64) error
}
