// Package amount provides the fixed-precision integer amount type used
// throughout the ledger. Amounts are whole base units (the smallest token
// denomination); there is no floating point anywhere in the core.
//
// All arithmetic is overflow-checked: operations that would wrap return
// ErrOverflow instead. Caller-supplied decimal strings are parsed exactly
// once at the boundary with Parse; the engines only ever see Amount values.
package amount

import (
	"errors"
	"math"
	"strconv"
)

var (
	// ErrInvalid indicates a non-numeric, negative, or out-of-range input.
	ErrInvalid = errors.New("invalid amount")
	// ErrOverflow indicates arithmetic that would exceed the representable range.
	ErrOverflow = errors.New("amount overflow")
)

// Amount is a quantity of value in base units.
type Amount int64

// Zero is the additive identity.
const Zero Amount = 0

// Parse converts a caller-supplied base-unit decimal string into an Amount.
// Negative values, empty strings, non-digits, and values beyond int64 range
// are rejected with ErrInvalid.
func Parse(s string) (Amount, error) {
	if s == "" {
		return 0, ErrInvalid
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalid
	}
	if v < 0 {
		return 0, ErrInvalid
	}
	return Amount(v), nil
}

// Add returns a+b, or ErrOverflow if the sum exceeds the representable range.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns a-b, or ErrOverflow if the difference underflows.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b < 0 && a > math.MaxInt64+b {
		return 0, ErrOverflow
	}
	if b > 0 && a < math.MinInt64+b {
		return 0, ErrOverflow
	}
	return a - b, nil
}

// Mul returns a*n, or ErrOverflow if the product would wrap.
func (a Amount) Mul(n int64) (Amount, error) {
	if a == 0 || n == 0 {
		return 0, nil
	}
	p := int64(a) * n
	if p/n != int64(a) {
		return 0, ErrOverflow
	}
	return Amount(p), nil
}

// Div returns a/n and whether the division is exact.
func (a Amount) Div(n int64) (Amount, bool) {
	if n == 0 {
		return 0, false
	}
	return Amount(int64(a) / n), int64(a)%n == 0
}

// String renders the amount as a base-10 base-unit string, the boundary
// representation used in API payloads.
func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10)
}
