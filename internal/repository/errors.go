package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// 一意制約違反
	ErrConflict = errors.New("conflict")
	// 外部キー違反
	ErrInvalidReference = errors.New("invalid reference")
)
