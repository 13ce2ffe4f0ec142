package api

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ToDecimal divides the integer representation in units by 10^decimals.
// The result keeps every significant digit, no float rounding is involved.
func ToDecimal(units string, decimals int32) (string, error) {
	d, err := parseUnits(units)
	if err != nil {
		return "", err
	}
	return d.Shift(-decimals).String(), nil
}

// ToNative is the inverse of ToDecimal and returns the smallest-unit integer
// representation of amount. It refuses amounts with more fractional digits
// than decimals instead of rounding them away.
func ToNative(amount string, decimals int32) (string, error) {
	d, err := toNativeDecimal(amount, decimals)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// StroopsToXLM converts a native integer amount to a decimal XLM amount.
func StroopsToXLM(stroops int64) decimal.Decimal {
	return decimal.New(stroops, -NativeDecimals)
}

// XLMToStroops converts a decimal XLM amount to stroops.
func XLMToStroops(amount string) (int64, error) {
	d, err := toNativeDecimal(amount, NativeDecimals)
	if err != nil {
		return 0, err
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s overflows int64 stroops", ErrInvalidAmount, amount)
	}
	return d.IntPart(), nil
}

// formatAmount renders amount with at most NativeDecimals fractional digits,
// the format payment operations expect.
func formatAmount(amount string) (string, error) {
	stroops, err := ToNative(amount, NativeDecimals)
	if err != nil {
		return "", err
	}
	return ToDecimal(stroops, NativeDecimals)
}

func toNativeDecimal(amount string, decimals int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
	}
	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return decimal.Zero, fmt.Errorf(
			"%w: %s has more than %d fractional digits", ErrInvalidAmount, amount, decimals,
		)
	}
	return shifted, nil
}

func parseUnits(units string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(units))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
	}
	if !d.IsInteger() {
		return decimal.Zero, fmt.Errorf("%w: %s is not an integer amount", ErrInvalidAmount, units)
	}
	return d, nil
}
