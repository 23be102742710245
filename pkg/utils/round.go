package utils

import "github.com/shopspring/decimal"

// Round rounds v to the given number of decimal places, half to even.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).RoundBank(places).Float64()
	return f
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
