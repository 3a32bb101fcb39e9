// internal/metrics/bins.go
package metrics

// LOS bin labels. The three-way partition of the stay-duration axis is fixed.
const (
	BinShort  = "≤7 days"
	BinMedium = "8–14 days"
	BinLong   = ">14 days"
)

// Bins returns the LOS bin labels in axis order.
func Bins() []string {
	return []string{BinShort, BinMedium, BinLong}
}

// IsBin reports whether label is one of the fixed LOS bins.
func IsBin(label string) bool {
	switch label {
	case BinShort, BinMedium, BinLong:
		return true
	default:
		return false
	}
}

