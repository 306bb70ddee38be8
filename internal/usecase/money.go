package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/djordjeivanovic11/ladimood-back/internal/apperr"
)

// 金額カラムはnumeric(10,2)
var maxAmount = decimal.New(1, 8)

// 小数2桁まで・10^8未満・負でない
func validateAmount(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return apperr.InvalidArgument(field + " must not be negative")
	}
	if v.Exponent() < -2 && !v.Equal(v.Truncate(2)) {
		return apperr.InvalidArgument(field + " must have at most 2 decimal places")
	}
	if v.GreaterThanOrEqual(maxAmount) {
		return apperr.InvalidArgument(field + " is too large")
	}
	return nil
}
