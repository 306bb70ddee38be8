package auth

import (
	"context"
	"errors"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// リフレッシュトークンでアクセストークンを再発行する。リフレッシュトークン自体は更新しない
type RefreshUsecase struct {
	users  repository.UserRepository
	tokens *TokenService
}

func NewRefreshUsecase(users repository.UserRepository, tokens *TokenService) *RefreshUsecase {
	return &RefreshUsecase{users: users, tokens: tokens}
}

func (u *RefreshUsecase) Execute(ctx context.Context, refreshToken string) (AccessToken, error) {
	// アクセストークンをリフレッシュとして使うことはできない
	claims, err := u.tokens.VerifyKind(refreshToken, TokenRefresh)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return AccessToken{}, apperr.Wrap(apperr.CodeUnauthenticated, err, "Refresh token expired")
		}
		return AccessToken{}, apperr.Wrap(apperr.CodeUnauthenticated, err, "Invalid refresh token")
	}

	user, err := u.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AccessToken{}, apperr.Unauthenticated("Invalid refresh token")
		}
		return AccessToken{}, apperr.Internal(err)
	}
	if !user.IsActive {
		return AccessToken{}, apperr.Unauthenticated("Invalid refresh token")
	}

	access, err := u.tokens.IssueKind(user.Email, TokenAccess)
	if err != nil {
		return AccessToken{}, apperr.Internal(err)
	}
	return AccessToken{AccessToken: access, TokenType: "bearer"}, nil
}
