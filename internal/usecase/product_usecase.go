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

const msgProductNotFound = "Product not found"

type ProductUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
}

// DI
func NewProductUsecase(products repo.ProductRepository, categories repo.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{products: products, categories: categories}
}

// GET /account/productsの絞り込み
type ListProductsInput struct {
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	CategoryID  *int64
}

type CategoryInput struct {
	Name        string
	Description string
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return nil, apperr.InvalidArgument("min_price must not exceed max_price")
	}
	products, err := u.products.List(ctx, repo.ProductListQuery{
		CategoryID: in.CategoryID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, apperr.NotFound(msgProductNotFound)
		}
		return model.Product{}, apperr.Internal(err)
	}
	return p, nil
}

func (u *ProductUsecase) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, apperr.InvalidArgument("name is required")
	}
	c, err := u.categories.Create(ctx, model.Category{Name: name, Description: strings.TrimSpace(in.Description)})
	if err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return model.Category{}, apperr.Conflict("Category already exists")
		}
		return model.Category{}, apperr.Internal(err)
	}
	return c, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	p, err := u.buildProduct(ctx, in)
	if err != nil {
		return model.Product{}, err
	}
	created, err := u.products.Create(ctx, p)
	if err != nil {
		return model.Product{}, apperr.Internal(err)
	}
	return u.Get(ctx, created.ID)
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in ProductInput) (model.Product, error) {
	p, err := u.buildProduct(ctx, in)
	if err != nil {
		return model.Product{}, err
	}
	p.ID = id
	if err := u.products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, apperr.NotFound(msgProductNotFound)
		}
		return model.Product{}, apperr.Internal(err)
	}
	return u.Get(ctx, id)
}

// 論理削除。過去の注文明細からは引き続き参照できる
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if err := u.products.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound(msgProductNotFound)
		}
		return apperr.Internal(err)
	}
	return nil
}

func (u *ProductUsecase) buildProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, apperr.InvalidArgument("name is required")
	}
	if err := validateAmount("price", in.Price); err != nil {
		return model.Product{}, err
	}
	if in.CategoryID != nil {
		if _, err := u.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return model.Product{}, apperr.InvalidArgument("Category not found")
			}
			return model.Product{}, apperr.Internal(err)
		}
	}
	return model.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		CategoryID:  in.CategoryID,
	}, nil
}
