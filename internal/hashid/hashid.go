package hashid

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

const (
	DefaultSalt      = "ladimoodjenajjacibrendnabalkanu"
	DefaultMinLength = 20
)

var ErrInvalidID = errors.New("invalid identifier")

// 注文IDを外部向けの文字列に変換する。暗号ではなく連番を隠すだけ
type Codec struct {
	h *hashids.HashID
}

func New(salt string, minLength int) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength
	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("hashids: %w", err)
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id int64) (string, error) {
	if id < 0 {
		return "", fmt.Errorf("%w: negative id %d", ErrInvalidID, id)
	}
	s, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return "", fmt.Errorf("hashids encode: %w", err)
	}
	return s, nil
}

// このCodecで作られた文字列以外はErrInvalidID
func (c *Codec) Decode(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidID
	}
	ids, err := c.h.DecodeInt64WithError(s)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalidID
	}
	// 再エンコードして一致しないものは弾く
	again, err := c.h.EncodeInt64(ids)
	if err != nil || again != s {
		return 0, ErrInvalidID
	}
	return ids[0], nil
}
