// テスト用のインメモリDB
package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/infra/db"
)

// テストごとに独立したDB。接続は1本に絞る。外部キーも有効にする
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), db.Options())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(gdb))
	require.NoError(t, db.SeedRoles(context.Background(), gdb))
	return gdb
}

func CreateUser(t *testing.T, gdb *gorm.DB, email string) model.User {
	t.Helper()
	var role model.Role
	require.NoError(t, gdb.Where("name = ?", model.RoleUser).First(&role).Error)

	u := model.User{
		Email:          email,
		HashedPassword: "x",
		FullName:       "Test " + email,
		IsActive:       true,
		RoleID:         role.ID,
	}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func CreateAdmin(t *testing.T, gdb *gorm.DB, email string) model.User {
	t.Helper()
	u := CreateUser(t, gdb, email)
	var role model.Role
	require.NoError(t, gdb.Where("name = ?", model.RoleAdmin).First(&role).Error)
	require.NoError(t, gdb.Model(&u).Update("role_id", role.ID).Error)
	u.RoleID = role.ID
	return u
}

func CreateProduct(t *testing.T, gdb *gorm.DB, name, price string) model.Product {
	t.Helper()
	p := model.Product{Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}
