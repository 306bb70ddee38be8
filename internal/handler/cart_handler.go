package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/usecase"
)

// /account/cart と /account/wishlist
type CartHandler struct {
	carts     *usecase.CartUsecase
	wishlists *usecase.WishlistUsecase
}

func NewCartHandler(carts *usecase.CartUsecase, wishlists *usecase.WishlistUsecase) *CartHandler {
	return &CartHandler{carts: carts, wishlists: wishlists}
}

func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cart", h.getCart)
	g.POST("/cart", h.addToCart)
	g.DELETE("/cart/clear", h.clearCart)
	g.PUT("/cart/:item_id", h.updateItem)
	g.DELETE("/cart/:item_id", h.removeItem)

	g.GET("/wishlist", h.listWishlist)
	g.POST("/wishlist", h.addToWishlist)
	g.DELETE("/wishlist/:item_id", h.removeWishlistItem)
}

type cartItemRequest struct {
	ProductID int64      `json:"product_id" validate:"required,gt=0"`
	Quantity  int64      `json:"quantity" validate:"gt=0"`
	Color     string     `json:"color" validate:"required"`
	Size      model.Size `json:"size" validate:"required,size"`
}

type updateCartItemRequest struct {
	Quantity int64      `json:"quantity" validate:"gt=0"`
	Color    string     `json:"color" validate:"required"`
	Size     model.Size `json:"size" validate:"required,size"`
}

type wishlistItemRequest struct {
	ProductID int64      `json:"product_id" validate:"required,gt=0"`
	Color     string     `json:"color" validate:"required"`
	Size      model.Size `json:"size" validate:"required,size"`
}

func (h *CartHandler) getCart(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	out, err := h.carts.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// 同じ商品でも毎回新しい行になる
func (h *CartHandler) addToCart(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req cartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	out, err := h.carts.AddItem(c.Request().Context(), user.ID, usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return err
	}
	var req updateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	out, err := h.carts.UpdateItem(c.Request().Context(), user.ID, itemID, usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
		Color:    req.Color,
		Size:     req.Size,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return err
	}
	if err := h.carts.RemoveItem(c.Request().Context(), user.ID, itemID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Item removed from cart"})
}

func (h *CartHandler) clearCart(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.carts.Clear(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Cart cleared successfully"})
}

func (h *CartHandler) listWishlist(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	out, err := h.wishlists.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToWishlist(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req wishlistItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	out, err := h.wishlists.AddItem(c.Request().Context(), user.ID, usecase.AddWishlistItemInput{
		ProductID: req.ProductID,
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeWishlistItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return err
	}
	if err := h.wishlists.RemoveItem(c.Request().Context(), user.ID, itemID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Item removed from wishlist"})
}
