package ledger

import (
	"fmt"
	"math"
	"math/big"
)

// Monetary amounts are *big.Rat throughout the engine, matching BigQuery
// NUMERIC. Tool calls deliver amounts as float64 (JSON numbers); MoneyFromFloat
// snaps them to cents before any comparison so that balance checks never
// flip on binary floating-point error at the cent boundary.

// maxMoneyMagnitude bounds accepted amounts so the cent count always fits in
// an int64. Anything a bank would refuse to wire anyway.
const maxMoneyMagnitude = 1e15

// MoneyFromFloat converts a float64 amount to a *big.Rat rounded to the
// nearest cent (half away from zero). NaN, infinities and magnitudes past
// maxMoneyMagnitude return nil, which IsPositive rejects.
func MoneyFromFloat(v float64) *big.Rat {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxMoneyMagnitude {
		return nil
	}
	cents := int64(v*100 + 0.5)
	if v < 0 {
		cents = int64(v*100 - 0.5)
	}
	return new(big.Rat).SetFrac64(cents, 100)
}

// MoneyFromString parses a decimal string like "1250.75" into a *big.Rat.
func MoneyFromString(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("MoneyFromString: invalid amount %q", s)
	}
	return r, nil
}

// MoneyString renders an amount with two decimal places.
func MoneyString(r *big.Rat) string {
	if r == nil {
		return "0.00"
	}
	return r.FloatString(2)
}

// MoneyFloat returns the float64 value of an amount, for result payloads only.
// Never feed the result back into balance arithmetic.
func MoneyFloat(r *big.Rat) float64 {
	if r == nil {
		return 0
	}
	f, _ := r.Float64()
	return f
}

// IsPositive reports whether r is a positive amount.
func IsPositive(r *big.Rat) bool {
	return r != nil && r.Sign() > 0
}
