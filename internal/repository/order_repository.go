package repository

import (
	"context"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	// 明細と商品も読み込む
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 他人の注文はErrNotFound
	FindByIDForUser(ctx context.Context, orderID, userID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	//管理者用。購入者・住所・明細を含む
	ListDetailed(ctx context.Context) ([]model.Order, error)
	FindDetailedByID(ctx context.Context, orderID int64) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// 明細・売上記録も削除
	Delete(ctx context.Context, orderID int64) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
}

type SalesRepository interface {
	// 存在しないユーザー・注文はErrInvalidReference
	Create(ctx context.Context, record *model.SalesRecord) error
	List(ctx context.Context) ([]model.SalesRecord, error)
}
