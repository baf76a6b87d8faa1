package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func checkIntRange(field string, lo, hi *int) error {
	if lo != nil && hi != nil && *lo > *hi {
		return fmt.Errorf("%w: %sMin is greater than %sMax", ErrInvalidInput, field, field)
	}
	return nil
}

func checkDecimalRange(field string, lo, hi *decimal.Decimal) error {
	if lo != nil && hi != nil && lo.GreaterThan(*hi) {
		return fmt.Errorf("%w: %sMin is greater than %sMax", ErrInvalidInput, field, field)
	}
	return nil
}
