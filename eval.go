package calc

import (
	"math/big"
)

// Non-integer results are printed at float64 precision but with big.Float's
// exponent range, so they never round to 0 or Inf.
const printPrec = 53

// Number is an exact rational result. The zero value is 0.
type Number struct {
	r *big.Rat
}

func NewNumber(r *big.Rat) Number {
	return Number{r: new(big.Rat).Set(r)}
}

func (n Number) rat() *big.Rat {
	if n.r == nil {
		return new(big.Rat)
	}
	return n.r
}

// Rat returns a copy of the underlying value.
func (n Number) Rat() *big.Rat {
	return new(big.Rat).Set(n.rat())
}

func (n Number) IsInt() bool {
	return n.rat().IsInt()
}

// Float64 returns the nearest float64, which is 0 or ±Inf outside its range.
func (n Number) Float64() float64 {
	f, _ := n.rat().Float64()
	return f
}

func (n Number) String() string {
	r := n.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	return new(big.Float).SetPrec(printPrec).SetRat(r).Text('g', -1)
}

// apply folds a binary operator into the running value. The caller checks
// for a zero divisor before DIVIDE.
func apply(op TokenKind, left, right *big.Rat) *big.Rat {
	switch op {
	case PLUS:
		return left.Add(left, right)
	case MINUS:
		return left.Sub(left, right)
	case MULTIPLY:
		return left.Mul(left, right)
	case DIVIDE:
		return left.Quo(left, right)
	}
	panic("unreachable")
}
