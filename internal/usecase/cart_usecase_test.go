package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	gormrepo "github.com/djordjeivanovic11/ladimood-back/internal/infra/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/testutil"
)

func TestCartCreatedLazilyOnce(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	uc := NewCartUsecase(gormrepo.NewCartGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	first, err := uc.GetCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, first.Items)
	assert.True(t, first.Subtotal.IsZero())

	second, err := uc.GetCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var n int64
	gdb.Model(&model.Cart{}).Where("user_id = ?", u.ID).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestCartAddAlwaysInsertsNewLine(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "10.00")
	uc := NewCartUsecase(gormrepo.NewCartGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	in := AddCartItemInput{ProductID: p.ID, Quantity: 2, Color: "black", Size: model.SizeM}
	a, err := uc.AddItem(ctx, u.ID, in)
	require.NoError(t, err)
	b, err := uc.AddItem(ctx, u.ID, in)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	cart, err := uc.GetCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.True(t, cart.Subtotal.Equal(decimal.NewFromInt(40)), cart.Subtotal.String())
	assert.Equal(t, "Tee", cart.Items[0].Product.Name)
}

func TestCartAddValidation(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "10.00")
	uc := NewCartUsecase(gormrepo.NewCartGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	_, err := uc.AddItem(ctx, u.ID, AddCartItemInput{ProductID: 999, Quantity: 1, Color: "black", Size: model.SizeM})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	_, err = uc.AddItem(ctx, u.ID, AddCartItemInput{ProductID: p.ID, Quantity: 0, Color: "black", Size: model.SizeM})
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	_, err = uc.AddItem(ctx, u.ID, AddCartItemInput{ProductID: p.ID, Quantity: 1, Color: "black", Size: "XXXL"})
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestCartUpdateAndRemoveAreOwnershipScoped(t *testing.T) {
	gdb := testutil.NewDB(t)
	owner := testutil.CreateUser(t, gdb, "owner@x.com")
	other := testutil.CreateUser(t, gdb, "other@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "10.00")
	uc := NewCartUsecase(gormrepo.NewCartGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	item, err := uc.AddItem(ctx, owner.ID, AddCartItemInput{ProductID: p.ID, Quantity: 1, Color: "black", Size: model.SizeM})
	require.NoError(t, err)

	_, err = uc.UpdateItem(ctx, other.ID, item.ID, UpdateCartItemInput{Quantity: 5, Color: "red", Size: model.SizeL})
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.True(t, apperr.IsCode(uc.RemoveItem(ctx, other.ID, item.ID), apperr.CodeNotFound))

	updated, err := uc.UpdateItem(ctx, owner.ID, item.ID, UpdateCartItemInput{Quantity: 5, Color: "red", Size: model.SizeL})
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.Quantity)
	assert.Equal(t, model.SizeL, updated.Size)

	require.NoError(t, uc.RemoveItem(ctx, owner.ID, item.ID))
	assert.True(t, apperr.IsCode(uc.RemoveItem(ctx, owner.ID, item.ID), apperr.CodeNotFound))

	cart, err := uc.GetCart(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Subtotal.IsZero())
}

func TestCartKeepsLinesForDeletedProducts(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "12.50")
	uc := NewCartUsecase(gormrepo.NewCartGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	item, err := uc.AddItem(ctx, u.ID, AddCartItemInput{ProductID: p.ID, Quantity: 2, Color: "black", Size: model.SizeM})
	require.NoError(t, err)
	require.NoError(t, gdb.Delete(&model.Product{}, p.ID).Error)

	cart, err := uc.GetCart(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "Tee", cart.Items[0].Product.Name)
	assert.True(t, cart.Subtotal.Equal(decimal.NewFromInt(25)), cart.Subtotal.String())

	// 明細の更新でも商品が引ける
	updated, err := uc.UpdateItem(ctx, u.ID, item.ID, UpdateCartItemInput{Quantity: 1, Color: "black", Size: model.SizeM})
	require.NoError(t, err)
	require.NotNil(t, updated.Product)
}

func TestCartClearIsIdempotent(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "10.00")
	uc := NewCartUsecase(gormrepo.NewCartGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	// カートが無くても成功
	require.NoError(t, uc.Clear(ctx, u.ID))

	_, err := uc.AddItem(ctx, u.ID, AddCartItemInput{ProductID: p.ID, Quantity: 1, Color: "black", Size: model.SizeS})
	require.NoError(t, err)
	require.NoError(t, uc.Clear(ctx, u.ID))
	require.NoError(t, uc.Clear(ctx, u.ID))

	var items int64
	gdb.Model(&model.CartItem{}).Count(&items)
	assert.Zero(t, items)
}

func TestWishlistRejectsDuplicateProduct(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "10.00")
	uc := NewWishlistUsecase(gormrepo.NewWishlistGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	empty, err := uc.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = uc.AddItem(ctx, u.ID, AddWishlistItemInput{ProductID: p.ID, Color: "black", Size: model.SizeM})
	require.NoError(t, err)

	// 色・サイズが違っても同じ商品は重複
	_, err = uc.AddItem(ctx, u.ID, AddWishlistItemInput{ProductID: p.ID, Color: "red", Size: model.SizeL})
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	items, err := uc.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistRemoveOwnershipScoped(t *testing.T) {
	gdb := testutil.NewDB(t)
	owner := testutil.CreateUser(t, gdb, "owner@x.com")
	other := testutil.CreateUser(t, gdb, "other@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "10.00")
	uc := NewWishlistUsecase(gormrepo.NewWishlistGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	ctx := context.Background()

	item, err := uc.AddItem(ctx, owner.ID, AddWishlistItemInput{ProductID: p.ID, Color: "black", Size: model.SizeM})
	require.NoError(t, err)

	assert.True(t, apperr.IsCode(uc.RemoveItem(ctx, other.ID, item.ID), apperr.CodeNotFound))
	require.NoError(t, uc.RemoveItem(ctx, owner.ID, item.ID))
}
