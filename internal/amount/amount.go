package amount

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// attoExponent is the decimal exponent between atto-units and display
// units (1 unit = 10^18 atto).
const attoExponent = 18

// maxValue is 2^128 - 1, the ceiling for all saturating arithmetic. The
// recorded-game format stores amounts as unsigned 128-bit integers, so the
// Go port clamps at the same bound.
var maxValue = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Amount is a non-negative monetary value in atto-units. The zero value is
// zero. Amounts are immutable; every operation returns a new value.
type Amount struct {
	n *big.Int
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{}
}

// FromUint64 builds an Amount from a uint64 atto value.
func FromUint64(v uint64) Amount {
	return Amount{n: new(big.Int).SetUint64(v)}
}

// Parse reads a base-10 atto string. Negative or malformed inputs are
// rejected; values above 2^128-1 are clamped.
func Parse(s string) (Amount, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	if n.Sign() < 0 {
		return Amount{}, fmt.Errorf("negative amount %q", s)
	}
	if n.Cmp(maxValue) > 0 {
		n.Set(maxValue)
	}
	return Amount{n: n}, nil
}

// MustParse is Parse for package-level constants.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) big() *big.Int {
	if a.n == nil {
		return new(big.Int)
	}
	return a.n
}

// Add returns a+b, saturating at 2^128-1.
func (a Amount) Add(b Amount) Amount {
	sum := new(big.Int).Add(a.big(), b.big())
	if sum.Cmp(maxValue) > 0 {
		sum.Set(maxValue)
	}
	return Amount{n: sum}
}

// Sub returns a-b, flooring at zero.
func (a Amount) Sub(b Amount) Amount {
	diff := new(big.Int).Sub(a.big(), b.big())
	if diff.Sign() < 0 {
		diff.SetInt64(0)
	}
	return Amount{n: diff}
}

// MulDiv returns floor(a*num/denom) with the multiplication saturated at
// 2^128-1 before dividing. denom must be non-zero.
func (a Amount) MulDiv(num, denom uint64) Amount {
	prod := new(big.Int).Mul(a.big(), new(big.Int).SetUint64(num))
	if prod.Cmp(maxValue) > 0 {
		prod.Set(maxValue)
	}
	prod.Quo(prod, new(big.Int).SetUint64(denom))
	return Amount{n: prod}
}

// Cmp compares a and b, returning -1, 0 or 1.
func (a Amount) Cmp(b Amount) int {
	return a.big().Cmp(b.big())
}

// GreaterThan reports a > b.
func (a Amount) GreaterThan(b Amount) bool {
	return a.Cmp(b) > 0
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.n == nil || a.n.Sign() == 0
}

// String renders the amount as base-10 atto digits, the wire format used by
// the external interfaces.
func (a Amount) String() string {
	return a.big().String()
}

// Display renders the amount in display units, e.g. "1.05" for 1.05e18 atto.
func (a Amount) Display() string {
	return decimal.NewFromBigInt(a.big(), -attoExponent).String()
}

// DisplayFloat returns the display-unit value as a float64 for read-only
// projections. Not suitable for settlement arithmetic.
func (a Amount) DisplayFloat() float64 {
	f, _ := decimal.NewFromBigInt(a.big(), -attoExponent).Float64()
	return f
}

// MarshalJSON encodes the amount as an atto string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes an atto string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("amount must be a JSON string, got %s", data)
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
