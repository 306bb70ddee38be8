package auth

import (
	"context"
	"errors"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

// 失敗理由は区別せず同じメッセージを返す
const msgCouldNotValidate = "Could not validate credentials"

// アクセストークンからユーザーを特定する
type Authenticator struct {
	tokens *TokenService
	users  repository.UserRepository
}

func NewAuthenticator(tokens *TokenService, users repository.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

func (a *Authenticator) Authenticate(ctx context.Context, raw string) (*model.User, error) {
	claims, err := a.tokens.VerifyKind(raw, TokenAccess)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnauthenticated, err, msgCouldNotValidate)
	}

	user, err := a.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthenticated(msgCouldNotValidate)
		}
		return nil, apperr.Internal(err)
	}
	if !user.IsActive {
		return nil, apperr.Unauthenticated(msgCouldNotValidate)
	}
	return user, nil
}
