package repository

import (
	"context"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。メール重複はErrConflict
	Create(ctx context.Context, user *model.User) error
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	//注文・カート・ウィッシュリスト・住所もまとめて削除
	DeleteCascade(ctx context.Context, userID int64) error
}

type RoleRepository interface {
	FindByName(ctx context.Context, name model.RoleName) (*model.Role, error)
}
