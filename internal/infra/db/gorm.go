package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/djordjeivanovic11/ladimood-back/internal/config"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), Options())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("extracting sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return gdb, nil
}

// 一意制約・外部キー違反をgormのエラーに変換させる
func Options() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

// 開発・テスト用。本番はgooseのマイグレーションを使う
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Address{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Wishlist{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.SalesRecord{},
		&model.NewsletterSubscriber{},
		&model.AuditLog{},
	)
}

// adminとuserのロールを用意する。何度実行してもよい
func SeedRoles(ctx context.Context, gdb *gorm.DB) error {
	roles := []model.Role{{Name: model.RoleAdmin}, {Name: model.RoleUser}}
	return gdb.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&roles).Error
}
