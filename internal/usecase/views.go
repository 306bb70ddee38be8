package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

// 一覧やカートに載せる商品の要約
type ProductSummary struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

func toProductSummary(p *model.Product) *ProductSummary {
	if p == nil {
		return nil
	}
	return &ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price, ImageURL: p.ImageURL}
}

type UserSummary struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

type OrderItemView struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Color       string          `json:"color"`
	Size        model.Size      `json:"size"`
	Price       decimal.Decimal `json:"price"`
}

func toOrderItemViews(items []model.OrderItem) []OrderItemView {
	out := make([]OrderItemView, 0, len(items))
	for _, it := range items {
		name := ""
		if it.Product != nil {
			name = it.Product.Name
		}
		out = append(out, OrderItemView{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: name,
			Quantity:    it.Quantity,
			Color:       it.Color,
			Size:        it.Size,
			Price:       it.Price,
		})
	}
	return out
}

// 利用者向け。IDはハッシュ化した文字列
type OrderView struct {
	ID         string            `json:"id"`
	Status     model.OrderStatus `json:"status"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	Items      []OrderItemView   `json:"items"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// 管理者向け。購入者と住所も含める
type AdminOrderView struct {
	ID         int64             `json:"id"`
	Ref        string            `json:"ref"`
	UserID     int64             `json:"user_id"`
	User       *UserSummary      `json:"user"`
	Address    *model.Address    `json:"address"`
	Status     model.OrderStatus `json:"status"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	Items      []OrderItemView   `json:"items"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func toAdminOrderView(o model.Order, ref string) AdminOrderView {
	v := AdminOrderView{
		ID:         o.ID,
		Ref:        ref,
		UserID:     o.UserID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		Items:      toOrderItemViews(o.Items),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.User != nil {
		v.User = &UserSummary{
			ID:          o.User.ID,
			Email:       o.User.Email,
			FullName:    o.User.FullName,
			PhoneNumber: o.User.PhoneNumber,
		}
		v.Address = o.User.Address
	}
	return v
}
