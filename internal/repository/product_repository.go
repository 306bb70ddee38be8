package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// 存在する商品IDの数
	CountByIDs(ctx context.Context, ids []int64) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c model.Category) (model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
}

type NewsletterRepository interface {
	// 登録済みのメールはErrConflict
	Subscribe(ctx context.Context, email string) (model.NewsletterSubscriber, error)
}
