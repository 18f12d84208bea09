package wizard

import "math"

// Bounds for the indicative annual rate, in percent.
const (
	MinAnnualRate = 10.9
	MaxAnnualRate = 31.9
)

// IndicativeRate estimates the annual percentage rate shown on the amount
// screen before the backend has priced the application. Larger amounts and
// longer terms price lower; the result is clamped to the product range.
func IndicativeRate(amount float64, termMonths int) float64 {
	rate := 24 - amount/10000 - float64(termMonths)/12*1.2
	if rate < MinAnnualRate {
		rate = MinAnnualRate
	}
	if rate > MaxAnnualRate {
		rate = MaxAnnualRate
	}
	return rate
}

// MonthlyPayment computes the annuity payment for a principal at the given
// annual rate (percent) over the given term.
func MonthlyPayment(amount, annualRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	monthly := annualRate / 100 / 12
	if monthly == 0 {
		return amount / float64(termMonths)
	}
	factor := math.Pow(1+monthly, float64(termMonths))
	return amount * monthly * factor / (factor - 1)
}
