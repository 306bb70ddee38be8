package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	domainrepo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	return translateErr(r.db.WithContext(ctx).Omit("Role", "Address").Create(user).Error)
}

// emailでユーザーを1件取得
func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

func (r *userGormRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("hashed_password", hashedPassword)
	if res.Error != nil {
		return res.Error
	}
	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}
	return nil
}

// 子テーブルから順に消す
func (r *userGormRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&model.Order{}).Select("id").Where("user_id = ?", id)
		cartIDs := tx.Model(&model.Cart{}).Select("id").Where("user_id = ?", id)
		wishlistIDs := tx.Model(&model.Wishlist{}).Select("id").Where("user_id = ?", id)

		steps := []func() error{
			func() error { return tx.Where("order_id IN (?)", orderIDs).Delete(&model.OrderItem{}).Error },
			func() error {
				return tx.Where("user_id = ? OR order_id IN (?)", id, orderIDs).Delete(&model.SalesRecord{}).Error
			},
			func() error { return tx.Where("user_id = ?", id).Delete(&model.Order{}).Error },
			func() error { return tx.Where("cart_id IN (?)", cartIDs).Delete(&model.CartItem{}).Error },
			func() error { return tx.Where("user_id = ?", id).Delete(&model.Cart{}).Error },
			func() error { return tx.Where("wishlist_id IN (?)", wishlistIDs).Delete(&model.WishlistItem{}).Error },
			func() error { return tx.Where("user_id = ?", id).Delete(&model.Wishlist{}).Error },
			func() error { return tx.Where("user_id = ?", id).Delete(&model.Address{}).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}

		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainrepo.ErrNotFound
		}
		return nil
	})
}

type roleGormRepository struct {
	db *gorm.DB
}

func NewRoleGormRepository(db *gorm.DB) domainrepo.RoleRepository {
	return &roleGormRepository{db: db}
}

func (r *roleGormRepository) FindByName(ctx context.Context, name model.RoleName) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, translateErr(err)
	}
	return &role, nil
}
