package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidEnum = errors.New("invalid enum value")

type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

var sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

func ParseSize(s string) (Size, error) {
	v := Size(strings.ToUpper(strings.TrimSpace(s)))
	for _, sz := range sizes {
		if v == sz {
			return sz, nil
		}
	}
	return "", fmt.Errorf("%w: size %q", ErrInvalidEnum, s)
}

func (s Size) String() string { return string(s) }

func (s Size) Valid() bool {
	_, err := ParseSize(string(s))
	return err == nil
}

// JSON/フォームの境界で検証する
func (s *Size) UnmarshalText(b []byte) error {
	v, err := ParseSize(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
