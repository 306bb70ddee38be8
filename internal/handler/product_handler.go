package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/usecase"
)

// 商品一覧・詳細（ログイン不要）
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.GET("/products/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	var in usecase.ListProductsInput

	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperr.InvalidArgument("invalid category_id")
		}
		in.CategoryID = &id
	}
	var err error
	if in.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		return err
	}
	if in.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		return err
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid " + name)
	}
	return &d, nil
}
