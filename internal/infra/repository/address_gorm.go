package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

type addressGormRepository struct {
	db *gorm.DB
}

// DI
func NewAddressGormRepository(db *gorm.DB) repo.AddressRepository {
	return &addressGormRepository{db: db}
}

// ユーザーの住所を返す
func (r *addressGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Address, error) {
	var a model.Address
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&a).Error; err != nil {
		return model.Address{}, translateErr(err)
	}
	return a, nil
}

// user_idの一意制約で作成/更新を1文で行う
func (r *addressGormRepository) Upsert(ctx context.Context, address model.Address) (model.Address, error) {
	address.ID = 0
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"street_address",
				"city",
				"state",
				"postal_code",
				"country",
				"updated_at",
			}),
		}).
		Create(&address).Error
	if err != nil {
		return model.Address{}, translateErr(err)
	}
	// 更新時はIDが返らないことがあるので読み直す
	return r.FindByUserID(ctx, address.UserID)
}

// 住所を削除
func (r *addressGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
