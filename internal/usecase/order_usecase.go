package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/hashid"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

const msgOrderNotFound = "Order not found"

// 注文確認メールを送る約束
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, user model.User, orderRef string, order model.Order) error
}

// 新しい注文を管理画面に流す
type OrderPublisher interface {
	Publish(ctx context.Context, v any)
}

type OrderMetrics interface {
	OrderCreated(status string)
	EmailFailed(kind string)
}

type OrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	ids      *hashid.Codec
	notifier OrderNotifier
	feed     OrderPublisher
	metrics  OrderMetrics
	log      *logger.Logger
	now      func() time.Time
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	ids *hashid.Codec,
	notifier OrderNotifier,
	feed OrderPublisher,
	metrics OrderMetrics,
	log *logger.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		orders:   orders,
		ids:      ids,
		notifier: notifier,
		feed:     feed,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

// 価格は呼び出し側の値をそのまま保存する
type OrderItemInput struct {
	ProductID int64
	Quantity  int64
	Color     string
	Size      model.Size
	Price     decimal.Decimal
}

type CreateOrderInput struct {
	// 空ならCREATED
	Status     model.OrderStatus
	TotalPrice decimal.Decimal
	Items      []OrderItemInput
}

type CreatedOrder struct {
	OrderView
	ConfirmationSent bool `json:"confirmation_sent"`
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, user *model.User, in CreateOrderInput) (CreatedOrder, error) {
	status := in.Status
	if status == "" {
		status = model.OrderStatusCreated
	}
	if !status.IsInitial() {
		return CreatedOrder{}, apperr.InvalidArgument("status must be CREATED or PENDING")
	}
	if len(in.Items) == 0 {
		return CreatedOrder{}, apperr.InvalidArgument("order must contain at least one item")
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	productIDs := make([]int64, 0, len(in.Items))
	seen := make(map[int64]struct{}, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if err := validateLine(it.Quantity, it.Color, it.Size); err != nil {
			return CreatedOrder{}, err
		}
		if err := validateAmount("price", it.Price); err != nil {
			return CreatedOrder{}, err
		}
		line := model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     strings.TrimSpace(it.Color),
			Size:      it.Size,
			Price:     it.Price,
		}
		items = append(items, line)
		total = total.Add(line.LineTotal())
		if _, ok := seen[it.ProductID]; !ok {
			seen[it.ProductID] = struct{}{}
			productIDs = append(productIDs, it.ProductID)
		}
	}
	// 0は未指定として扱う
	if !in.TotalPrice.IsZero() && !in.TotalPrice.Equal(total) {
		return CreatedOrder{}, apperr.InvalidArgument("total_price does not match the sum of item prices")
	}
	if err := validateAmount("total_price", total); err != nil {
		return CreatedOrder{}, err
	}

	order := model.Order{UserID: user.ID, Status: status, TotalPrice: total}

	//注文・明細・売上記録は同じトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		n, err := r.Products().CountByIDs(ctx, productIDs)
		if err != nil {
			return apperr.Internal(err)
		}
		if n != int64(len(productIDs)) {
			return apperr.NotFound("Product not found")
		}

		if err := r.Orders().Create(ctx, &order); err != nil {
			return apperr.Internal(err)
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return apperr.Internal(err)
		}
		sale := &model.SalesRecord{
			UserID:     user.ID,
			OrderID:    order.ID,
			DateOfSale: u.now(),
			BuyerName:  user.FullName,
			Price:      total,
		}
		if err := r.Sales().Create(ctx, sale); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return CreatedOrder{}, err
	}

	ctx = u.log.WithField(ctx, "order_id", order.ID)
	u.metrics.OrderCreated(status.String())

	created, err := u.orders.FindDetailedByID(ctx, order.ID)
	if err != nil {
		return CreatedOrder{}, apperr.Internal(err)
	}
	ref, err := u.ids.Encode(created.ID)
	if err != nil {
		return CreatedOrder{}, apperr.Internal(err)
	}

	u.feed.Publish(ctx, toAdminOrderView(created, ref))

	// 確定した注文はメール失敗で取り消さない
	sent := true
	if err := u.notifier.SendOrderConfirmation(ctx, *user, ref, created); err != nil {
		sent = false
		u.metrics.EmailFailed("order_confirmation")
		u.log.Error(ctx, "sending order confirmation failed", err)
	}

	return CreatedOrder{OrderView: toOrderView(created, ref), ConfirmationSent: sent}, nil
}

// 空でも成功
func (u *OrderUsecase) ListOrders(ctx context.Context, userID int64) ([]OrderView, error) {
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		ref, err := u.ids.Encode(o.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, toOrderView(o, ref))
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, ref string) (OrderView, error) {
	id, err := u.decode(ref)
	if err != nil {
		return OrderView{}, err
	}

	o, err := u.orders.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderView{}, apperr.NotFound(msgOrderNotFound)
		}
		return OrderView{}, apperr.Internal(err)
	}
	return toOrderView(o, ref), nil
}

// PENDINGのみ。明細と売上記録ごと削除する
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, ref string) error {
	id, err := u.decode(ref)
	if err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUser(ctx, id, userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.NotFound(msgOrderNotFound)
			}
			return apperr.Internal(err)
		}
		if !o.Status.Cancellable() {
			return apperr.InvalidState("Only pending orders can be canceled")
		}
		if err := r.Orders().Delete(ctx, o.ID); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// 復号できないIDはDBを見ずに弾く
func (u *OrderUsecase) decode(ref string) (int64, error) {
	id, err := u.ids.Decode(ref)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInvalidArgument, err, "Invalid order ID")
	}
	return id, nil
}

func toOrderView(o model.Order, ref string) OrderView {
	return OrderView{
		ID:         ref,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		Items:      toOrderItemViews(o.Items),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
