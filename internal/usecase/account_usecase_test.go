package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	gormrepo "github.com/djordjeivanovic11/ladimood-back/internal/infra/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	"github.com/djordjeivanovic11/ladimood-back/internal/notification"
	"github.com/djordjeivanovic11/ladimood-back/internal/testutil"
)

func newAccountUsecase(t *testing.T) (*AccountUsecase, *mockAccountNotifier, *countingMetrics, *gorm.DB) {
	t.Helper()
	gdb := testutil.NewDB(t)
	n := new(mockAccountNotifier)
	m := newCountingMetrics()
	uc := NewAccountUsecase(
		gormrepo.NewUserGormRepository(gdb),
		gormrepo.NewNewsletterGormRepository(gdb),
		n, m, logger.Nop(),
	)
	return uc, n, m, gdb
}

func TestSubscribeNewsletterDuplicate(t *testing.T) {
	uc, _, _, _ := newAccountUsecase(t)
	ctx := context.Background()

	require.NoError(t, uc.SubscribeNewsletter(ctx, "fan@x.com"))
	err := uc.SubscribeNewsletter(ctx, " FAN@x.com ")
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	assert.EqualError(t, err, "Email already registered.")

	assert.True(t, apperr.IsCode(uc.SubscribeNewsletter(ctx, "nope"), apperr.CodeInvalidArgument))
}

func TestSendReferrals(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		uc, n, _, _ := newAccountUsecase(t)
		err := uc.SendReferrals(context.Background(), nil)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
		n.AssertNotCalled(t, "SendPromo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid email sends nothing", func(t *testing.T) {
		uc, n, _, _ := newAccountUsecase(t)
		err := uc.SendReferrals(context.Background(), []Referral{{Email: "a@x.com"}, {Email: "bad"}})
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
		n.AssertNotCalled(t, "SendPromo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("name defaults to local part", func(t *testing.T) {
		uc, n, _, _ := newAccountUsecase(t)
		n.On("SendPromo", mock.Anything, "mila@x.com", "mila").Return(nil).Once()
		n.On("SendPromo", mock.Anything, "ana@x.com", "Ana").Return(nil).Once()

		err := uc.SendReferrals(context.Background(), []Referral{{Email: "Mila@x.com"}, {Email: "ana@x.com", Name: "Ana"}})
		require.NoError(t, err)
		n.AssertExpectations(t)
	})

	t.Run("partial failure still tries everyone", func(t *testing.T) {
		uc, n, m, _ := newAccountUsecase(t)
		n.On("SendPromo", mock.Anything, "a@x.com", mock.Anything).Return(errors.New("smtp down"))
		n.On("SendPromo", mock.Anything, "b@x.com", mock.Anything).Return(nil)
		n.On("SendPromo", mock.Anything, "c@x.com", mock.Anything).Return(errors.New("smtp down"))

		err := uc.SendReferrals(context.Background(), []Referral{{Email: "a@x.com"}, {Email: "b@x.com"}, {Email: "c@x.com"}})
		assert.True(t, apperr.IsCode(err, apperr.CodeInternal))
		n.AssertNumberOfCalls(t, "SendPromo", 3)
		assert.Equal(t, 2, m.failed["referral"])
	})
}

func TestContact(t *testing.T) {
	uc, n, m, _ := newAccountUsecase(t)
	ctx := context.Background()

	n.On("SendContact", mock.Anything, notification.ContactInquiry{
		Name: "Mila", Email: "mila@x.com", Message: "Hi", InquiryType: "wholesale",
	}).Return(nil).Once()
	require.NoError(t, uc.Contact(ctx, ContactInput{Name: " Mila ", Email: "mila@x.com", Message: "Hi", InquiryType: "wholesale"}))

	assert.True(t, apperr.IsCode(uc.Contact(ctx, ContactInput{Name: "Mila", Email: "bad", Message: "Hi"}), apperr.CodeInvalidArgument))
	assert.True(t, apperr.IsCode(uc.Contact(ctx, ContactInput{Email: "mila@x.com", Message: "Hi"}), apperr.CodeInvalidArgument))

	n.On("SendContact", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	err := uc.Contact(ctx, ContactInput{Name: "Mila", Email: "mila@x.com", Message: "Again"})
	assert.True(t, apperr.IsCode(err, apperr.CodeInternal))
	assert.Equal(t, 1, m.failed["contact"])
}

func TestDeleteAccountRemovesOwnedRows(t *testing.T) {
	uc, _, _, gdb := newAccountUsecase(t)
	u := testutil.CreateUser(t, gdb, "gone@x.com")
	p := testutil.CreateProduct(t, gdb, "Tee", "10.00")
	ctx := context.Background()

	carts := NewCartUsecase(gormrepo.NewCartGormRepository(gdb), gormrepo.NewProductGormRepository(gdb))
	_, err := carts.AddItem(ctx, u.ID, AddCartItemInput{ProductID: p.ID, Quantity: 1, Color: "black", Size: model.SizeS})
	require.NoError(t, err)
	_, err = NewAddressUsecase(gormrepo.NewAddressGormRepository(gdb)).Save(ctx, u.ID, AddressInput{
		StreetAddress: "Knez Mihailova 1", City: "Beograd", PostalCode: "11000", Country: "Serbia",
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteAccount(ctx, u.ID))

	for _, m := range []any{&model.User{}, &model.Cart{}, &model.CartItem{}, &model.Address{}} {
		var n int64
		require.NoError(t, gdb.Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T", m)
	}
	assert.True(t, apperr.IsCode(uc.DeleteAccount(ctx, u.ID), apperr.CodeNotFound))
}
