package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/hashid"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/report"
)

// 管理画面（/management）の注文・売上
type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	sales     repo.SalesRepository
	auditLogs repo.AuditLogRepository
	ids       *hashid.Codec
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	sales repo.SalesRepository,
	auditLogs repo.AuditLogRepository,
	ids *hashid.Codec,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, orders: orders, sales: sales, auditLogs: auditLogs, ids: ids}
}

type RecordSaleInput struct {
	UserID     int64
	OrderID    int64
	DateOfSale time.Time
	BuyerName  string
	Price      decimal.Decimal
}

// 注文が1件も無ければNOT_FOUND
func (u *AdminOrderUsecase) ListAllOrders(ctx context.Context) ([]AdminOrderView, error) {
	orders, err := u.orders.ListDetailed(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("No orders found")
	}
	out := make([]AdminOrderView, 0, len(orders))
	for _, o := range orders {
		v, err := u.view(o)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (u *AdminOrderUsecase) GetOrderDetail(ctx context.Context, orderID int64) (AdminOrderView, error) {
	o, err := u.orders.FindDetailedByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return AdminOrderView{}, apperr.NotFound(msgOrderNotFound)
		}
		return AdminOrderView{}, apperr.Internal(err)
	}
	return u.view(o)
}

// 遷移チェックはしない。enumに含まれる値なら何でも設定できる
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorID, orderID int64, status model.OrderStatus) (AdminOrderView, error) {
	if !status.Valid() {
		return AdminOrderView{}, apperr.InvalidArgument("Invalid order status")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.NotFound(msgOrderNotFound)
			}
			return apperr.Internal(err)
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.NotFound(msgOrderNotFound)
			}
			return apperr.Internal(err)
		}

		//監査ログ
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   auditJSON(map[string]any{"status": o.Status}),
			AfterJSON:    auditJSON(map[string]any{"status": status}),
		}); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return AdminOrderView{}, err
	}
	return u.GetOrderDetail(ctx, orderID)
}

// 存在しないユーザー・注文はINVALID_ARGUMENT
func (u *AdminOrderUsecase) RecordSale(ctx context.Context, actorID int64, in RecordSaleInput) (model.SalesRecord, error) {
	if strings.TrimSpace(in.BuyerName) == "" {
		return model.SalesRecord{}, apperr.InvalidArgument("buyer_name is required")
	}
	if err := validateAmount("price", in.Price); err != nil {
		return model.SalesRecord{}, err
	}
	if in.DateOfSale.IsZero() {
		in.DateOfSale = time.Now()
	}

	record := model.SalesRecord{
		UserID:     in.UserID,
		OrderID:    in.OrderID,
		DateOfSale: in.DateOfSale,
		BuyerName:  strings.TrimSpace(in.BuyerName),
		Price:      in.Price,
	}
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Sales().Create(ctx, &record); err != nil {
			if errors.Is(err, repo.ErrInvalidReference) {
				return apperr.Wrap(apperr.CodeInvalidArgument, err, "Unknown user or order")
			}
			return apperr.Internal(err)
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionRecordSale,
			ResourceType: model.AuditResourceSale,
			ResourceID:   record.ID,
			AfterJSON: auditJSON(map[string]any{
				"user_id":  record.UserID,
				"order_id": record.OrderID,
				"price":    record.Price,
			}),
		})
	})
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return model.SalesRecord{}, err
		}
		return model.SalesRecord{}, apperr.Internal(err)
	}
	return record, nil
}

// 売上が無ければNOT_FOUND
func (u *AdminOrderUsecase) ListSales(ctx context.Context) ([]model.SalesRecord, error) {
	records, err := u.sales.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(records) == 0 {
		return nil, apperr.NotFound("No sales records found")
	}
	return records, nil
}

// 売上が無くてもヘッダーだけのファイルを返す
func (u *AdminOrderUsecase) ExportSales(ctx context.Context, w io.Writer) error {
	records, err := u.sales.List(ctx)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := report.WriteSales(w, records); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (u *AdminOrderUsecase) ListAuditLogs(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs, err := u.auditLogs.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return logs, nil
}

func (u *AdminOrderUsecase) view(o model.Order) (AdminOrderView, error) {
	ref, err := u.ids.Encode(o.ID)
	if err != nil {
		return AdminOrderView{}, apperr.Internal(err)
	}
	return toAdminOrderView(o, ref), nil
}

func auditJSON(v map[string]any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
