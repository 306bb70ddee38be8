package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/hashid"
	"github.com/djordjeivanovic11/ladimood-back/internal/notification"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

type mockOrderNotifier struct{ mock.Mock }

func (m *mockOrderNotifier) SendOrderConfirmation(ctx context.Context, user model.User, orderRef string, order model.Order) error {
	args := m.Called(ctx, user, orderRef, order)
	return args.Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, v any) {
	m.Called(ctx, v)
}

// 呼ばれた回数だけ数える
type countingMetrics struct {
	created map[string]int
	failed  map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{created: map[string]int{}, failed: map[string]int{}}
}

func (m *countingMetrics) OrderCreated(status string) { m.created[status]++ }
func (m *countingMetrics) EmailFailed(kind string)    { m.failed[kind]++ }

type mockAccountNotifier struct{ mock.Mock }

func (m *mockAccountNotifier) SendPromo(ctx context.Context, to, name string) error {
	args := m.Called(ctx, to, name)
	return args.Error(0)
}

func (m *mockAccountNotifier) SendContact(ctx context.Context, in notification.ContactInquiry) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

// =====================
// OrderRepository mock
// =====================

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *mockOrderRepo) FindByIDForUser(ctx context.Context, orderID, userID int64) (model.Order, error) {
	args := m.Called(ctx, orderID, userID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *mockOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Error(1)
}

func (m *mockOrderRepo) ListDetailed(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Error(1)
}

func (m *mockOrderRepo) FindDetailedByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *mockOrderRepo) Delete(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

// TxManagerは呼ばれたことだけ記録する
type mockTxManager struct{ mock.Mock }

func (m *mockTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.Called(ctx).Error(0)
}

func newCodec(t *testing.T) *hashid.Codec {
	t.Helper()
	c, err := hashid.New(hashid.DefaultSalt, hashid.DefaultMinLength)
	require.NoError(t, err)
	return c
}
