package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email       string
	Password    string
	FullName    string
	PhoneNumber string
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	hasher PasswordHasher
}

// DI
func NewRegisterUserUsecase(users repository.UserRepository, roles repository.RoleRepository, hasher PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{users: users, roles: roles, hasher: hasher}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (*model.User, error) {
	email, ok := normalizeEmail(in.Email)
	if !ok {
		return nil, apperr.InvalidArgument("invalid email format")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, apperr.InvalidArgument("full_name is required")
	}

	// email重複チェック
	_, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Conflict("Email already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	role, err := u.roles.FindByName(ctx, model.RoleUser)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		Email:          email,
		HashedPassword: hashed,
		FullName:       fullName,
		PhoneNumber:    strings.TrimSpace(in.PhoneNumber),
		IsActive:       true,
		RoleID:         role.ID,
	}
	// 同時登録は一意制約で弾く
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.Internal(err)
	}
	user.Role = role
	return user, nil
}
