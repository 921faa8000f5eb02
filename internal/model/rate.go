package model

import "math"

// Percent returns num/den*100 rounded to two decimals, or 0 when den is 0.
func Percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(num/den*100*100) / 100
}
