package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

// CartUsecase は /account/cart の業務ロジック。カートは1ユーザー1つ
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
}

func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{carts: carts, products: products}
}

type AddCartItemInput struct {
	ProductID int64
	Quantity  int64
	Color     string
	Size      model.Size
}

type UpdateCartItemInput struct {
	Quantity int64
	Color    string
	Size     model.Size
}

// subtotalは表示用。現在の商品価格で計算する
type CartItemView struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Product   *ProductSummary `json:"product"`
	Quantity  int64           `json:"quantity"`
	Color     string          `json:"color"`
	Size      model.Size      `json:"size"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"user_id"`
	Items    []CartItemView  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func validateLine(quantity int64, color string, size model.Size) error {
	if quantity < 1 {
		return apperr.InvalidArgument("quantity must be at least 1")
	}
	if strings.TrimSpace(color) == "" {
		return apperr.InvalidArgument("color is required")
	}
	if !size.Valid() {
		return apperr.InvalidArgument("invalid size")
	}
	return nil
}

// 無ければ空のカートを作って返す
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartView, error) {
	if _, err := u.carts.GetOrCreateByUserID(ctx, userID); err != nil {
		return CartView{}, apperr.Internal(err)
	}
	cart, err := u.carts.FindByUserID(ctx, userID)
	if err != nil {
		return CartView{}, apperr.Internal(err)
	}
	return toCartView(cart), nil
}

// 同じ商品でも常に新しい明細として追加
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartItemInput) (CartItemView, error) {
	if err := validateLine(in.Quantity, in.Color, in.Size); err != nil {
		return CartItemView{}, err
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemView{}, apperr.NotFound("Product not found")
		}
		return CartItemView{}, apperr.Internal(err)
	}

	cart, err := u.carts.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartItemView{}, apperr.Internal(err)
	}

	item, err := u.carts.AddItem(ctx, model.CartItem{
		CartID:    cart.ID,
		ProductID: p.ID,
		Quantity:  in.Quantity,
		Color:     strings.TrimSpace(in.Color),
		Size:      in.Size,
	})
	if err != nil {
		return CartItemView{}, apperr.Internal(err)
	}
	item.Product = &p
	return toCartItemView(item), nil
}

//所有チェックしてから更新
func (u *CartUsecase) UpdateItem(ctx context.Context, userID, itemID int64, in UpdateCartItemInput) (CartItemView, error) {
	if err := validateLine(in.Quantity, in.Color, in.Size); err != nil {
		return CartItemView{}, err
	}

	item, err := u.carts.FindItemForUser(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemView{}, apperr.NotFound("Cart item not found")
		}
		return CartItemView{}, apperr.Internal(err)
	}

	item.Quantity = in.Quantity
	item.Color = strings.TrimSpace(in.Color)
	item.Size = in.Size
	if err := u.carts.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartItemView{}, apperr.NotFound("Cart item not found")
		}
		return CartItemView{}, apperr.Internal(err)
	}
	return toCartItemView(item), nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if err := u.carts.DeleteItemForUser(ctx, userID, itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("Cart item not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

// カートが無くても成功
func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if err := u.carts.DeleteByUserID(ctx, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func toCartItemView(it model.CartItem) CartItemView {
	v := CartItemView{
		ID:        it.ID,
		ProductID: it.ProductID,
		Product:   toProductSummary(it.Product),
		Quantity:  it.Quantity,
		Color:     it.Color,
		Size:      it.Size,
		Subtotal:  decimal.Zero,
	}
	if it.Product != nil {
		v.Subtotal = it.Product.Price.Mul(decimal.NewFromInt(it.Quantity))
	}
	return v
}

func toCartView(c model.Cart) CartView {
	v := CartView{ID: c.ID, UserID: c.UserID, Items: make([]CartItemView, 0, len(c.Items)), Subtotal: decimal.Zero}
	for _, it := range c.Items {
		iv := toCartItemView(it)
		v.Items = append(v.Items, iv)
		v.Subtotal = v.Subtotal.Add(iv.Subtotal)
	}
	return v
}
