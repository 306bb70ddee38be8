package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

type wishlistGormRepository struct {
	db *gorm.DB
}

func NewWishlistGormRepository(db *gorm.DB) repo.WishlistRepository {
	return &wishlistGormRepository{db: db}
}

func (r *wishlistGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Wishlist, error) {
	var w model.Wishlist
	err := getOrCreateByUserID(r.db.WithContext(ctx), userID, &w, func() any {
		w = model.Wishlist{UserID: userID}
		return &w
	})
	if err != nil {
		return model.Wishlist{}, err
	}
	return w, nil
}

func (r *wishlistGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Wishlist, error) {
	var w model.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("wishlist_items.id ASC") }).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ?", userID).
		First(&w).Error
	if err != nil {
		return model.Wishlist{}, translateErr(err)
	}
	return w, nil
}

// (wishlist_id, product_id)の一意制約で重複を弾く
func (r *wishlistGormRepository) AddItem(ctx context.Context, item model.WishlistItem) (model.WishlistItem, error) {
	item.ID = 0
	if err := r.db.WithContext(ctx).Omit("Product").Create(&item).Error; err != nil {
		return model.WishlistItem{}, translateErr(err)
	}
	return item, nil
}

//所有チェック込みで削除
func (r *wishlistGormRepository) DeleteItemForUser(ctx context.Context, userID, itemID int64) error {
	owned := r.db.WithContext(ctx).Model(&model.Wishlist{}).Select("id").Where("user_id = ?", userID)
	res := r.db.WithContext(ctx).
		Where("id = ? AND wishlist_id IN (?)", itemID, owned).
		Delete(&model.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
