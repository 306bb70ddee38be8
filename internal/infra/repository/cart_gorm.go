package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart
	err := getOrCreateByUserID(r.db.WithContext(ctx), userID, &cart, func() any {
		cart = model.Cart{UserID: userID}
		return &cart
	})
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 探す→無ければ作る。同時作成で一意制約に負けたら勝った方を読み直す
func getOrCreateByUserID(db *gorm.DB, userID int64, dest any, build func() any) error {
	err := db.Where("user_id = ?", userID).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := build()
	if err := db.Create(row).Error; err != nil {
		if !errors.Is(translateErr(err), repo.ErrConflict) {
			return err
		}
		return db.Where("user_id = ?", userID).First(dest).Error
	}
	return nil
}

// 明細と商品を含めて取得。削除済みの商品も含める
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, translateErr(err)
	}
	return cart, nil
}

// 常に新しい行として追加する
func (r *CartGormRepository) AddItem(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	item.ID = 0
	if err := r.db.WithContext(ctx).Omit("Product").Create(&item).Error; err != nil {
		return model.CartItem{}, translateErr(err)
	}
	return item, nil
}

//cartItemが、そのuserのカートに属しているときだけ返す
func (r *CartGormRepository) FindItemForUser(ctx context.Context, userID, itemID int64) (model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return model.CartItem{}, translateErr(err)
	}
	return item, nil
}

// 明細の数量・色・サイズを更新
func (r *CartGormRepository) UpdateItem(ctx context.Context, item model.CartItem) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"quantity": item.Quantity,
			"color":    item.Color,
			"size":     item.Size,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

//所有チェック込みで明細を削除
func (r *CartGormRepository) DeleteItemForUser(ctx context.Context, userID, itemID int64) error {
	owned := r.db.WithContext(ctx).Model(&model.Cart{}).Select("id").Where("user_id = ?", userID)
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id IN (?)", itemID, owned).
		Delete(&model.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カート本体と明細を削除。無くても成功
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartIDs := tx.Model(&model.Cart{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("cart_id IN (?)", cartIDs).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.Cart{}).Error
	})
}
