package estimator

import (
	"math"
	"math/big"
	"strconv"
)

// RoundHalfUp rounds value to decimals places with ties going away from zero
// (2.5 -> 3, -2.5 -> -3). It works on the shortest decimal representation of
// the float, so 2.555 rounds to 2.56 even though its binary value sits just
// below the tie.
func RoundHalfUp(value float64, decimals int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	if decimals < 0 {
		decimals = 0
	}

	neg := value < 0
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(math.Abs(value), 'f', -1, 64))
	if !ok {
		return value
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))
	floored := new(big.Int).Quo(r.Num(), r.Denom())

	out, _ := new(big.Rat).SetFrac(floored, scale).Float64()
	if neg && out != 0 {
		out = -out
	}
	return out
}
