package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/testutil"
)

func seedOrder(t *testing.T, gdb *gorm.DB, userID, productID int64, status model.OrderStatus) model.Order {
	t.Helper()
	ctx := context.Background()
	o := model.Order{UserID: userID, Status: status, TotalPrice: decimal.RequireFromString("19.98")}
	require.NoError(t, NewOrderGormRepository(gdb).Create(ctx, &o))
	require.NoError(t, NewOrderItemGormRepository(gdb).CreateBulk(ctx, o.ID, []model.OrderItem{
		{ProductID: productID, Quantity: 2, Color: "white", Size: model.SizeM, Price: decimal.RequireFromString("9.99")},
	}))
	return o
}

func TestOrderFindForUserChecksOwnership(t *testing.T) {
	gdb := testutil.NewDB(t)
	owner := testutil.CreateUser(t, gdb, "owner@x.com")
	other := testutil.CreateUser(t, gdb, "other@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "12.00")
	o := seedOrder(t, gdb, owner.ID, p.ID, model.OrderStatusPending)
	r := NewOrderGormRepository(gdb)
	ctx := context.Background()

	_, err := r.FindByIDForUser(ctx, o.ID, other.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	got, err := r.FindByIDForUser(ctx, o.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	// 購入時点の価格のまま
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, "Tee", got.Items[0].Product.Name)
}

func TestOrderListByUserEmpty(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")

	orders, err := NewOrderGormRepository(gdb).ListByUserID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderListDetailedIncludesOwnerAndAddress(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "12.00")
	_, err := NewAddressGormRepository(gdb).Upsert(context.Background(), model.Address{
		UserID: u.ID, StreetAddress: "Main 1", City: "Sarajevo", PostalCode: "71000", Country: "BA",
	})
	require.NoError(t, err)
	seedOrder(t, gdb, u.ID, p.ID, model.OrderStatusCreated)

	orders, err := NewOrderGormRepository(gdb).ListDetailed(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].User)
	assert.Equal(t, "a@x.com", orders[0].User.Email)
	require.NotNil(t, orders[0].User.Address)
	assert.Equal(t, "Sarajevo", orders[0].User.Address.City)
}

func TestOrderDeleteRemovesItemsAndSales(t *testing.T) {
	gdb := testutil.NewDB(t)
	u := testutil.CreateUser(t, gdb, "a@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "12.00")
	o := seedOrder(t, gdb, u.ID, p.ID, model.OrderStatusPending)
	ctx := context.Background()
	require.NoError(t, NewSalesGormRepository(gdb).Create(ctx, &model.SalesRecord{
		UserID: u.ID, OrderID: o.ID, DateOfSale: time.Now(), BuyerName: u.FullName, Price: o.TotalPrice,
	}))

	r := NewOrderGormRepository(gdb)
	require.NoError(t, r.Delete(ctx, o.ID))
	assert.ErrorIs(t, r.Delete(ctx, o.ID), repo.ErrNotFound)

	var items, sales int64
	gdb.Model(&model.OrderItem{}).Count(&items)
	gdb.Model(&model.SalesRecord{}).Count(&sales)
	assert.Zero(t, items)
	assert.Zero(t, sales)
}

func TestOrderUpdateStatusMissing(t *testing.T) {
	gdb := testutil.NewDB(t)
	err := NewOrderGormRepository(gdb).UpdateStatus(context.Background(), 999, model.OrderStatusShipped)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestSalesCreateRejectsUnknownReferences(t *testing.T) {
	gdb := testutil.NewDB(t)
	err := NewSalesGormRepository(gdb).Create(context.Background(), &model.SalesRecord{
		UserID: 404, OrderID: 404, DateOfSale: time.Now(), BuyerName: "ghost", Price: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, repo.ErrInvalidReference)
}
