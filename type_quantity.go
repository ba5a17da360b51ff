package cryptofolio

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is an exact amount of an asset.
type Quantity struct {
	value decimal.Decimal
}

// Q builds a Quantity from a literal. It panics on NaN or infinite floats, use
// ParseQuantity for user input.
func Q[T float64 | int | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a decimal amount such as "0.5" or "1e-8".
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	q := Quantity{value: d}
	if q.overflows() {
		return Quantity{}, fmt.Errorf("%w: %q is too large", ErrInvalidInput, s)
	}
	return q, nil
}

func (q Quantity) Equal(p Quantity) bool   { return q.value.Equal(p.value) }
func (q Quantity) Add(p Quantity) Quantity { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) IsPositive() bool        { return q.value.IsPositive() }
func (q Quantity) String() string          { return q.value.String() }

// Float64 is meant for sinks that only accept floats, such as spreadsheet cells.
func (q Quantity) Float64() float64 { return q.value.InexactFloat64() }

// overflows reports whether the quantity is beyond the float64 range.
func (q Quantity) overflows() bool { return math.IsInf(q.Float64(), 0) }

// MarshalJSON implements the json.Marshaler interface.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return q.value.MarshalJSON()
}

func (q *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	return q.value.UnmarshalJSON(decimalBytes)
}
