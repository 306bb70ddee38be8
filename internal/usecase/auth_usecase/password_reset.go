package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	"github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

// 登録有無にかかわらず同じメッセージを返す
const ForgotPasswordMessage = "If this email is registered, you will receive instructions to reset your password."

// パスワード再設定メールを送る約束
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, to string, resetLink string) error
}

// ログイン中のユーザーのパスワード変更
type ChangePasswordUsecase struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
}

func NewChangePasswordUsecase(users repository.UserRepository, hasher PasswordHasher, verifier PasswordVerifier) *ChangePasswordUsecase {
	return &ChangePasswordUsecase{users: users, hasher: hasher, verifier: verifier}
}

func (u *ChangePasswordUsecase) Execute(ctx context.Context, user *model.User, current, next string) error {
	if !u.verifier.Verify(current, user.HashedPassword) {
		return apperr.InvalidArgument("Incorrect current password")
	}
	if err := validatePassword(next); err != nil {
		return err
	}
	return setPassword(ctx, u.users, u.hasher, user.ID, next)
}

func setPassword(ctx context.Context, users repository.UserRepository, hasher PasswordHasher, userID int64, plain string) error {
	hashed, err := hasher.Hash(plain)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.Internal(err)
	}
	if err := users.UpdatePassword(ctx, userID, hashed); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

type ForgotPasswordUsecase struct {
	users       repository.UserRepository
	tokens      *TokenService
	mailer      ResetMailer
	log         *logger.Logger
	frontendURL string
}

func NewForgotPasswordUsecase(users repository.UserRepository, tokens *TokenService, mailer ResetMailer, log *logger.Logger, frontendURL string) *ForgotPasswordUsecase {
	return &ForgotPasswordUsecase{users: users, tokens: tokens, mailer: mailer, log: log, frontendURL: frontendURL}
}

// 未登録でも送信失敗でも成功扱い。結果からメールの登録有無がわからないようにする
func (u *ForgotPasswordUsecase) Execute(ctx context.Context, email string) error {
	normalized, ok := normalizeEmail(email)
	if !ok {
		return apperr.InvalidArgument("invalid email format")
	}

	user, err := u.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperr.Internal(err)
	}

	token, err := u.tokens.IssueKind(user.Email, TokenReset)
	if err != nil {
		return apperr.Internal(err)
	}

	link := strings.TrimRight(u.frontendURL, "/") + "/auth/change-password?token=" + url.QueryEscape(token)
	if err := u.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		u.log.Error(u.log.WithUserID(ctx, user.ID), "sending password reset email failed", err)
	}
	return nil
}

type ResetPasswordUsecase struct {
	users  repository.UserRepository
	tokens *TokenService
	hasher PasswordHasher
}

func NewResetPasswordUsecase(users repository.UserRepository, tokens *TokenService, hasher PasswordHasher) *ResetPasswordUsecase {
	return &ResetPasswordUsecase{users: users, tokens: tokens, hasher: hasher}
}

// 再設定用トークン以外は受け付けない
func (u *ResetPasswordUsecase) Execute(ctx context.Context, token, newPassword string) error {
	claims, err := u.tokens.VerifyKind(token, TokenReset)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperr.InvalidArgument("Reset token expired")
		}
		return apperr.InvalidArgument("Invalid reset token")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.InvalidArgument("Invalid reset token")
		}
		return apperr.Internal(err)
	}
	return setPassword(ctx, u.users, u.hasher, user.ID, newPassword)
}
