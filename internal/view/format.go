// internal/view/format.go
package view

import "strconv"

// FormatPercent formats a ratio with three decimals, e.g. 0.911 -> "0.911".
func FormatPercent(v Optional[float64]) string {
	x, ok := v.Get()
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(x, 'f', 3, 64)
}

// FormatDays formats a day count with two decimals, e.g. 0.89 -> "0.89".
func FormatDays(v Optional[float64]) string {
	x, ok := v.Get()
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// FormatDaysUnit is FormatDays with a " days" suffix on present values.
func FormatDaysUnit(v Optional[float64]) string {
	if v.IsMissing() {
		return Placeholder
	}
	return FormatDays(v) + " days"
}
