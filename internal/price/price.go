// Package price converts between the human decimal form of an amount
// ("0.015") and its on-chain integer form in the smallest unit (wei).
//
// Both directions are exact at 18 decimals: an input that would need
// rounding is rejected instead. Inputs are plain decimals (digits with an
// optional fraction); amounts must fit the chain's uint256.
package price

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the fixed precision of the native currency.
const Decimals = 18

// MaxBits is the width of an on-chain amount.
const MaxBits = 256

var plainDecimal = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

var (
	ErrInvalidPrice = errors.New("invalid price")
	ErrTooPrecise   = fmt.Errorf("%w: fractional component exceeds %d decimals", ErrInvalidPrice, Decimals)
	ErrNegative     = fmt.Errorf("%w: negative amount", ErrInvalidPrice)
	ErrTooLarge     = fmt.Errorf("%w: exceeds %d bits", ErrInvalidPrice, MaxBits)
)

// ToWei parses a decimal string and returns the amount in wei.
func ToWei(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPrice)
	}

	if !plainDecimal.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if d.IsNegative() {
		return nil, ErrNegative
	}

	wei := d.Shift(Decimals)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, ErrTooPrecise
	}

	v := wei.BigInt()
	if v.BitLen() > MaxBits {
		return nil, ErrTooLarge
	}
	return v, nil
}

// FromWei renders wei as a canonical decimal string: no exponent, no
// trailing fractional zeros, no trailing dot ("1500000000000000000" -> "1.5",
// "2000000000000000000" -> "2").
func FromWei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -Decimals).String()
}

// Normalize parses and re-renders s, i.e. FromWei(ToWei(s)).
func Normalize(s string) (string, error) {
	wei, err := ToWei(s)
	if err != nil {
		return "", err
	}
	return FromWei(wei), nil
}
