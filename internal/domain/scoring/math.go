package scoring

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func mean(a, b float64) float64 {
	return (a + b) / 2
}

// round rounds half away from zero to the given number of decimals.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
