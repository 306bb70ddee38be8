package notification

import (
	"context"
	"fmt"

	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
)

type orderLine struct {
	Product  string
	Color    string
	Size     string
	Quantity int64
	Price    string
}

type ContactInquiry struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	InquiryType string
}

// テンプレートを描画してMailerに渡す
type Notifier struct {
	mailer    Mailer
	recipient string
	shopURL   string
}

// recipientは問い合わせの宛先
func NewNotifier(mailer Mailer, recipient, shopURL string) *Notifier {
	return &Notifier{mailer: mailer, recipient: recipient, shopURL: shopURL}
}

func (n *Notifier) SendOrderConfirmation(ctx context.Context, user model.User, orderRef string, order model.Order) error {
	lines := make([]orderLine, 0, len(order.Items))
	for _, it := range order.Items {
		name := fmt.Sprintf("#%d", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		lines = append(lines, orderLine{
			Product:  name,
			Color:    it.Color,
			Size:     it.Size.String(),
			Quantity: it.Quantity,
			Price:    it.Price.StringFixed(2),
		})
	}
	body, err := render("order_confirmation.html", map[string]any{
		"Name":     user.FullName,
		"OrderRef": orderRef,
		"Items":    lines,
		"Total":    order.TotalPrice.StringFixed(2),
	})
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{
		To:      user.Email,
		Subject: "Order Confirmation - Order #" + orderRef,
		HTML:    body,
	})
}

func (n *Notifier) SendPasswordReset(ctx context.Context, to string, link string) error {
	body, err := render("password_reset.html", map[string]any{"Link": link})
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{To: to, Subject: "Password Reset Request", HTML: body})
}

func (n *Notifier) SendPromo(ctx context.Context, to, name string) error {
	body, err := render("promo.html", map[string]any{"Name": name, "ShopURL": n.shopURL})
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{To: to, Subject: "Your friend recommended Ladimood!", HTML: body})
}

// 返信先は問い合わせた人
func (n *Notifier) SendContact(ctx context.Context, in ContactInquiry) error {
	if n.recipient == "" {
		return fmt.Errorf("contact recipient is not configured")
	}
	body, err := render("contact.html", in)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Message{
		To:      n.recipient,
		ReplyTo: in.Email,
		Subject: "New Contact Form Submission - " + in.InquiryType,
		HTML:    body,
	})
}
