package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

type WishlistUsecase struct {
	wishlists repo.WishlistRepository
	products  repo.ProductRepository
}

func NewWishlistUsecase(wishlists repo.WishlistRepository, products repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{wishlists: wishlists, products: products}
}

type AddWishlistItemInput struct {
	ProductID int64
	Color     string
	Size      model.Size
}

type WishlistItemView struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Product   *ProductSummary `json:"product"`
	Color     string          `json:"color"`
	Size      model.Size      `json:"size"`
	CreatedAt time.Time       `json:"created_at"`
}

func (u *WishlistUsecase) List(ctx context.Context, userID int64) ([]WishlistItemView, error) {
	w, err := u.wishlists.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return []WishlistItemView{}, nil
		}
		return nil, apperr.Internal(err)
	}
	out := make([]WishlistItemView, 0, len(w.Items))
	for _, it := range w.Items {
		out = append(out, toWishlistItemView(it))
	}
	return out, nil
}

// 同じ商品は一意制約でCONFLICT
func (u *WishlistUsecase) AddItem(ctx context.Context, userID int64, in AddWishlistItemInput) (WishlistItemView, error) {
	if strings.TrimSpace(in.Color) == "" {
		return WishlistItemView{}, apperr.InvalidArgument("color is required")
	}
	if !in.Size.Valid() {
		return WishlistItemView{}, apperr.InvalidArgument("invalid size")
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return WishlistItemView{}, apperr.NotFound("Product not found")
		}
		return WishlistItemView{}, apperr.Internal(err)
	}

	w, err := u.wishlists.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return WishlistItemView{}, apperr.Internal(err)
	}

	item, err := u.wishlists.AddItem(ctx, model.WishlistItem{
		WishlistID: w.ID,
		ProductID:  p.ID,
		Color:      strings.TrimSpace(in.Color),
		Size:       in.Size,
	})
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return WishlistItemView{}, apperr.Conflict("Item already in wishlist")
		}
		return WishlistItemView{}, apperr.Internal(err)
	}
	item.Product = &p
	return toWishlistItemView(item), nil
}

func (u *WishlistUsecase) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if err := u.wishlists.DeleteItemForUser(ctx, userID, itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("Wishlist item not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func toWishlistItemView(it model.WishlistItem) WishlistItemView {
	return WishlistItemView{
		ID:        it.ID,
		ProductID: it.ProductID,
		Product:   toProductSummary(it.Product),
		Color:     it.Color,
		Size:      it.Size,
		CreatedAt: it.CreatedAt,
	}
}
