package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/multierr"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	"github.com/djordjeivanovic11/ladimood-back/internal/notification"
	repo "github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

// 紹介メールと問い合わせメール
type AccountNotifier interface {
	SendPromo(ctx context.Context, to, name string) error
	SendContact(ctx context.Context, in notification.ContactInquiry) error
}

type AccountMetrics interface {
	EmailFailed(kind string)
}

type Referral struct {
	Email string
	Name  string
}

type AccountUsecase struct {
	users      repo.UserRepository
	newsletter repo.NewsletterRepository
	notifier   AccountNotifier
	metrics    AccountMetrics
	log        *logger.Logger
}

func NewAccountUsecase(
	users repo.UserRepository,
	newsletter repo.NewsletterRepository,
	notifier AccountNotifier,
	metrics AccountMetrics,
	log *logger.Logger,
) *AccountUsecase {
	return &AccountUsecase{users: users, newsletter: newsletter, notifier: notifier, metrics: metrics, log: log}
}

// 注文・カート・ウィッシュリスト・住所もまとめて消す
func (u *AccountUsecase) DeleteAccount(ctx context.Context, userID int64) error {
	if err := u.users.DeleteCascade(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (u *AccountUsecase) SubscribeNewsletter(ctx context.Context, email string) error {
	addr, ok := parseEmail(email)
	if !ok {
		return apperr.InvalidArgument("invalid email format")
	}
	if _, err := u.newsletter.Subscribe(ctx, addr); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return apperr.Conflict("Email already registered.")
		}
		return apperr.Internal(err)
	}
	return nil
}

// 全員に送ってから失敗をまとめて返す
func (u *AccountUsecase) SendReferrals(ctx context.Context, referrals []Referral) error {
	if len(referrals) == 0 {
		return apperr.InvalidArgument("No referrals provided.")
	}
	for _, r := range referrals {
		if _, ok := parseEmail(r.Email); !ok {
			return apperr.InvalidArgument("invalid referral email: " + r.Email)
		}
	}

	var errs error
	for _, r := range referrals {
		to, _ := parseEmail(r.Email)
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = to[:strings.Index(to, "@")]
		}
		if err := u.notifier.SendPromo(ctx, to, name); err != nil {
			u.metrics.EmailFailed("referral")
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		failed := len(multierr.Errors(errs))
		u.log.Error(u.log.WithField(ctx, "failed", failed), "sending referral emails failed", errs)
		return apperr.Wrap(apperr.CodeInternal, errs, "Failed to send some referral emails")
	}
	return nil
}

type ContactInput struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	InquiryType string
}

func (u *AccountUsecase) Contact(ctx context.Context, in ContactInput) error {
	addr, ok := parseEmail(in.Email)
	if !ok {
		return apperr.InvalidArgument("invalid email format")
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Message) == "" {
		return apperr.InvalidArgument("name and message are required")
	}
	err := u.notifier.SendContact(ctx, notification.ContactInquiry{
		Name:        strings.TrimSpace(in.Name),
		Email:       addr,
		Phone:       strings.TrimSpace(in.Phone),
		Message:     strings.TrimSpace(in.Message),
		InquiryType: strings.TrimSpace(in.InquiryType),
	})
	if err != nil {
		u.metrics.EmailFailed("contact")
		return apperr.Wrap(apperr.CodeInternal, err, "Failed to send message")
	}
	return nil
}

func parseEmail(s string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return "", false
	}
	a, err := mail.ParseAddress(v)
	if err != nil || a.Address != v {
		return "", false
	}
	return v, true
}
