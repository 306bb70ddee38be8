package auth

import (
	"context"
	"errors"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

const msgIncorrectCredentials = "Incorrect email or password"

// handlerからusecaseに渡す入力
type LoginInput struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type LoginUsecase struct {
	users    repository.UserRepository
	verifier PasswordVerifier
	tokens   *TokenService
}

func NewLoginUsecase(users repository.UserRepository, verifier PasswordVerifier, tokens *TokenService) *LoginUsecase {
	return &LoginUsecase{users: users, verifier: verifier, tokens: tokens}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (TokenPair, error) {
	email, ok := normalizeEmail(in.Email)
	if !ok {
		return TokenPair{}, apperr.Unauthenticated(msgIncorrectCredentials)
	}

	//emailでユーザー取得
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, apperr.Unauthenticated(msgIncorrectCredentials)
		}
		return TokenPair{}, apperr.Internal(err)
	}

	//パスワード照合
	if !u.verifier.Verify(in.Password, user.HashedPassword) {
		return TokenPair{}, apperr.Unauthenticated(msgIncorrectCredentials)
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return TokenPair{}, apperr.Forbidden("Inactive user")
	}

	access, err := u.tokens.IssueKind(user.Email, TokenAccess)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}
	refresh, err := u.tokens.IssueKind(user.Email, TokenRefresh)
	if err != nil {
		return TokenPair{}, apperr.Internal(err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}
