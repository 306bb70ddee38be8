package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/testutil"
)

func TestCartGetOrCreateIsIdempotent(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	r := NewCartGormRepository(gdb)
	ctx := context.Background()

	c1, err := r.GetOrCreateByUserID(ctx, u.ID)
	require.NoError(t, err)
	c2, err := r.GetOrCreateByUserID(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID)
	var n int64
	gdb.Model(&model.Cart{}).Where("user_id = ?", u.ID).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestCartUniquePerUser(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	require.NoError(t, gdb.Create(&model.Cart{UserID: u.ID}).Error)

	err := gdb.Create(&model.Cart{UserID: u.ID}).Error
	assert.ErrorIs(t, translateErr(err), repo.ErrConflict)
}

func TestCartItemsOwnership(t *testing.T) {
	gdb := testutil.NewDB(t)
	owner := testutil.CreateUser(t, gdb, "owner@x.com")
	other := testutil.CreateUser(t, gdb, "other@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "19.90")
	r := NewCartGormRepository(gdb)
	ctx := context.Background()

	cart, err := r.GetOrCreateByUserID(ctx, owner.ID)
	require.NoError(t, err)
	item, err := r.AddItem(ctx, model.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 1, Color: "black", Size: model.SizeM})
	require.NoError(t, err)

	_, err = r.FindItemForUser(ctx, other.ID, item.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, r.DeleteItemForUser(ctx, other.ID, item.ID), repo.ErrNotFound)

	got, err := r.FindItemForUser(ctx, owner.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tee", got.Product.Name)
}

func TestCartAddSameVariantTwiceKeepsTwoLines(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "19.90")
	r := NewCartGormRepository(gdb)
	ctx := context.Background()

	cart, err := r.GetOrCreateByUserID(ctx, u.ID)
	require.NoError(t, err)
	line := model.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 1, Color: "red", Size: model.SizeS}
	_, err = r.AddItem(ctx, line)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, line)
	require.NoError(t, err)

	loaded, err := r.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 2)
}

func TestCartDeleteByUserIDIsIdempotent(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "19.90")
	r := NewCartGormRepository(gdb)
	ctx := context.Background()

	require.NoError(t, r.DeleteByUserID(ctx, u.ID))

	cart, err := r.GetOrCreateByUserID(ctx, u.ID)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, model.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 2, Color: "red", Size: model.SizeL})
	require.NoError(t, err)

	require.NoError(t, r.DeleteByUserID(ctx, u.ID))
	require.NoError(t, r.DeleteByUserID(ctx, u.ID))

	_, err = r.FindByUserID(ctx, u.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	var n int64
	gdb.Model(&model.CartItem{}).Count(&n)
	assert.Zero(t, n)
}
