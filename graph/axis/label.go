package axis

import (
	"math"
	"strconv"
)

// FormatLabel renders v with exactly two decimals, truncated toward zero.
func FormatLabel(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	c := v * 100
	if a := math.Abs(c); a < 1<<52 {
		// A few ulps keep 0.29*100 = 28.999999999999996 on the right side of the cut.
		c = math.Trunc(c + math.Copysign(math.Max(1e-9, a*1e-15), c))
	}
	if c == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(c/100, 'f', 2, 64)
}
