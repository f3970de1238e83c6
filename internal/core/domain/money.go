package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the precision every stored amount is kept at.
const MoneyPlaces = 2

var (
	ErrAmountRequired  = errors.New("amount is required")
	ErrAmountMalformed = errors.New("amount is not a valid number")
	ErrAmountNegative  = errors.New("amount must not be negative")
	ErrAmountPrecision = errors.New("amount must have at most 2 decimal places")
)

// RoundMoney rounds half away from zero to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ParseMoney parses a non-negative amount with at most two decimal places.
func ParseMoney(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrAmountRequired
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrAmountMalformed
	}
	if err := ValidateMoney(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateMoney checks sign and precision of an already-parsed amount.
func ValidateMoney(d decimal.Decimal) error {
	if d.IsNegative() {
		return ErrAmountNegative
	}
	if !d.Equal(d.Truncate(MoneyPlaces)) {
		return ErrAmountPrecision
	}
	return nil
}

// MaxZero clamps negative values to zero.
func MaxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
