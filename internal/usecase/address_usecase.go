package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
	"github.com/djordjeivanovic11/ladimood-back/internal/domain/model"
	"github.com/djordjeivanovic11/ladimood-back/internal/repository"
)

const msgAddressNotFound = "Address not found"

type AddressInput struct {
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	Country       string
}

// 住所は1ユーザー1件
type AddressUsecase struct {
	addresses repository.AddressRepository
}

func NewAddressUsecase(addresses repository.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

func (u *AddressUsecase) Get(ctx context.Context, userID int64) (model.Address, error) {
	a, err := u.addresses.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Address{}, apperr.NotFound(msgAddressNotFound)
		}
		return model.Address{}, apperr.Internal(err)
	}
	return a, nil
}

// 無ければ作成、あれば上書き
func (u *AddressUsecase) Save(ctx context.Context, userID int64, in AddressInput) (model.Address, error) {
	a := model.Address{
		UserID:        userID,
		StreetAddress: strings.TrimSpace(in.StreetAddress),
		City:          strings.TrimSpace(in.City),
		State:         strings.TrimSpace(in.State),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Country:       strings.TrimSpace(in.Country),
	}
	if a.StreetAddress == "" || a.City == "" || a.PostalCode == "" || a.Country == "" {
		return model.Address{}, apperr.InvalidArgument("street_address, city, postal_code and country are required")
	}

	saved, err := u.addresses.Upsert(ctx, a)
	if err != nil {
		return model.Address{}, apperr.Internal(err)
	}
	return saved, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64) error {
	if err := u.addresses.DeleteByUserID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgAddressNotFound)
		}
		return apperr.Internal(err)
	}
	return nil
}
