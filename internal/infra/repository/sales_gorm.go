package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

type salesGormRepository struct {
	db *gorm.DB
}

func NewSalesGormRepository(db *gorm.DB) repo.SalesRepository {
	return &salesGormRepository{db: db}
}

func (r *salesGormRepository) Create(ctx context.Context, record *model.SalesRecord) error {
	return translateErr(r.db.WithContext(ctx).Omit("User", "Order").Create(record).Error)
}

// 新しい売上から
func (r *salesGormRepository) List(ctx context.Context) ([]model.SalesRecord, error) {
	var records []model.SalesRecord
	if err := r.db.WithContext(ctx).Order("date_of_sale desc, id desc").Find(&records).Error; err != nil {
		return []model.SalesRecord{}, err
	}
	return records, nil
}
