package rules

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percent returns part/whole*100 rounded to 2 places, or 0 when whole is zero
func Percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(2).InexactFloat64()
}

func percentOf(part, whole int64) float64 {
	return Percent(decimal.NewFromInt(part), decimal.NewFromInt(whole))
}
