package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/report"
	"github.com/djordjeivanovic11/ladimood-back/internal/usecase"
)

// 新規注文をWebSocketで配信する
type OrderStream interface {
	Serve(w http.ResponseWriter, r *http.Request) error
}

// /management の注文・売上・監査ログ。管理画面では注文IDは数値のまま
type AdminOrderHandler struct {
	uc     *usecase.AdminOrderUsecase
	stream OrderStream
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, stream OrderStream) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, stream: stream}
}

func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.GET("/orders/stream", h.streamOrders)
	g.GET("/orders/:id", h.detail)
	g.PUT("/orders/:id/status", h.updateStatus)

	g.GET("/sales", h.listSales)
	g.POST("/sales", h.recordSale)
	g.GET("/sales/export", h.exportSales)

	g.GET("/audit-logs", h.listAuditLogs)
}

type orderStatusUpdateRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,order_status"`
}

type recordSaleRequest struct {
	UserID     int64           `json:"user_id" validate:"required,gt=0"`
	OrderID    int64           `json:"order_id" validate:"required,gt=0"`
	DateOfSale time.Time       `json:"date_of_sale"`
	BuyerName  string          `json:"buyer_name" validate:"required"`
	Price      decimal.Decimal `json:"price"`
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListAllOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetOrderDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// 遷移の順序は問わない
func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req orderStatusUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.Request().Context(), admin.ID, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) listSales(c echo.Context) error {
	out, err := h.uc.ListSales(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) recordSale(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	var req recordSaleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	out, err := h.uc.RecordSale(c.Request().Context(), admin.ID, usecase.RecordSaleInput{
		UserID:     req.UserID,
		OrderID:    req.OrderID,
		DateOfSale: req.DateOfSale,
		BuyerName:  req.BuyerName,
		Price:      req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// 書き込み途中で失敗しないよう一度バッファに出す
func (h *AdminOrderHandler) exportSales(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.uc.ExportSales(c.Request().Context(), &buf); err != nil {
		return err
	}
	filename := "sales_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	c.Response().Header().Set("File-Name", filename)
	c.Response().Header().Set("Content-Description", "File Transfer")
	return c.Blob(http.StatusOK, report.SalesContentType, buf.Bytes())
}

// upgrade後はechoのレスポンスを使わない
func (h *AdminOrderHandler) streamOrders(c echo.Context) error {
	if err := h.stream.Serve(c.Response(), c.Request()); err != nil {
		if c.Response().Committed {
			return nil
		}
		return apperr.Wrap(apperr.CodeInvalidArgument, err, "websocket upgrade failed")
	}
	return nil
}

func (h *AdminOrderHandler) listAuditLogs(c echo.Context) error {
	var f repo.AuditLogFilter

	for name, dst := range map[string]**int64{
		"actor_user_id": &f.ActorUserID,
		"resource_id":   &f.ResourceID,
	} {
		if v := c.QueryParam(name); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return apperr.InvalidArgument("invalid " + name)
			}
			*dst = &id
		}
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}
	for name, dst := range map[string]**time.Time{
		"from": &f.CreatedFrom,
		"to":   &f.CreatedTo,
	} {
		if v := c.QueryParam(name); v != "" {
			tm, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return apperr.InvalidArgument("invalid " + name)
			}
			*dst = &tm
		}
	}
	for name, dst := range map[string]*int{
		"limit":  &f.Limit,
		"offset": &f.Offset,
	} {
		if v := c.QueryParam(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return apperr.InvalidArgument("invalid " + name)
			}
			*dst = n
		}
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
