package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	gormrepo "github.com/djordjeivanovic11/ladimood-back/internal/infra/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/testutil"
)

func TestWishlistAddListRemove(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Hoodie", "49.90")
	uc := NewWishlistUsecase(gormrepo.NewWishlistGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	empty, err := uc.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	item, err := uc.AddItem(ctx, u.ID, AddWishlistItemInput{ProductID: p.ID, Color: " grey ", Size: model.SizeL})
	require.NoError(t, err)
	assert.Equal(t, "grey", item.Color)
	assert.Equal(t, "Hoodie", item.Product.Name)

	// 色やサイズが違っても同じ商品は重複
	_, err = uc.AddItem(ctx, u.ID, AddWishlistItemInput{ProductID: p.ID, Color: "black", Size: model.SizeS})
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	items, err := uc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, uc.RemoveItem(ctx, u.ID, item.ID))
	assert.True(t, apperr.IsCode(uc.RemoveItem(ctx, u.ID, item.ID), apperr.CodeNotFound))
}

func TestWishlistAddValidation(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Hoodie", "49.90")
	uc := NewWishlistUsecase(gormrepo.NewWishlistGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	_, err := uc.AddItem(ctx, u.ID, AddWishlistItemInput{ProductID: p.ID, Color: "", Size: model.SizeM})
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, err = uc.AddItem(ctx, u.ID, AddWishlistItemInput{ProductID: p.ID, Color: "red", Size: "XXXL"})
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, err = uc.AddItem(ctx, u.ID, AddWishlistItemInput{ProductID: 999, Color: "red", Size: model.SizeM})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestWishlistRemoveOtherUsersItem(t *testing.T) {
	gdb := testutil.NewDB(t)
	owner := testutil.CreateUser(t, gdb, "a@x.com")
	other := testutil.CreateUser(t, gdb, "b@x.com")
	p := testutil.CreateProduct(t, gdb, "Cap", "15.00")
	uc := NewWishlistUsecase(gormrepo.NewWishlistGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	item, err := uc.AddItem(ctx, owner.ID, AddWishlistItemInput{ProductID: p.ID, Color: "red", Size: model.SizeM})
	require.NoError(t, err)

	err = uc.RemoveItem(ctx, other.ID, item.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestWishlistKeepsDeletedProducts(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Scarf", "20.00")
	uc := NewWishlistUsecase(gormrepo.NewWishlistGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	_, err := uc.AddItem(ctx, u.ID, AddWishlistItemInput{ProductID: p.ID, Color: "blue", Size: model.SizeM})
	require.NoError(t, err)
	require.NoError(t, gdb.Delete(&model.Product{}, p.ID).Error)

	items, err := uc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Scarf", items[0].Product.Name)
}
