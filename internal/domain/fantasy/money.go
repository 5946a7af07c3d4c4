package fantasy

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var tenthsPerMillion = decimal.NewFromInt(10)

// PriceFromMillions converts a positive amount in millions to tenths.
// Amounts finer than one tenth are rejected.
func PriceFromMillions(millions decimal.Decimal) (int64, error) {
	if !millions.IsPositive() {
		return 0, invalidInput("amount must be greater than zero: %s", millions.String())
	}
	tenths := millions.Mul(tenthsPerMillion)
	if !tenths.Equal(tenths.Truncate(0)) {
		return 0, invalidInput("amount %s is finer than 0.1 million", millions.String())
	}
	return tenths.IntPart(), nil
}

// ParseMillions parses a textual amount in millions ("100", "99.5").
func ParseMillions(raw string) (int64, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: parse amount %q: %v", ErrInvalidInput, raw, err)
	}
	return PriceFromMillions(value)
}

// PriceToMillions converts tenths back to an exact decimal amount in millions.
func PriceToMillions(tenths int64) decimal.Decimal {
	return decimal.New(tenths, -1)
}
