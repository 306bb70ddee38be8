package repository

import (
	"context"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口。1ユーザー1件
type AddressRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Address, error)

	//なければ作成、あれば上書き
	Upsert(ctx context.Context, address model.Address) (model.Address, error)

	//住所がなければErrNotFound
	DeleteByUserID(ctx context.Context, userID int64) error
}
