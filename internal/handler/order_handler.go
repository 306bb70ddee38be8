package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/usecase"
)

// 注文IDはURL上ではハッシュ化した文字列
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.POST("/orders", h.create)
	g.GET("/orders/:order_id", h.get)
	g.DELETE("/order/:order_id", h.cancel)
}

type orderItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	Color     string          `json:"color" validate:"required"`
	Size      model.Size      `json:"size" validate:"required,size"`
	Price     decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	Status     model.OrderStatus  `json:"status"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Items      []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (h *OrderHandler) list(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListOrders(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
			Price:     it.Price,
		})
	}
	out, err := h.uc.CreateOrder(c.Request().Context(), user, usecase.CreateOrderInput{
		Status:     req.Status,
		TotalPrice: req.TotalPrice,
		Items:      items,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetOrder(c.Request().Context(), user.ID, c.Param("order_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// PENDINGのみ取り消せる
func (h *OrderHandler) cancel(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.uc.CancelOrder(c.Request().Context(), user.ID, c.Param("order_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
