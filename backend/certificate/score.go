package certificate

import (
	"math"
	"strconv"
)

// ScorePercentage is correct/attempted as a percentage rounded to one
// decimal place. No attempts yields 0, never NaN.
func ScorePercentage(correct, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	pct := float64(correct) / float64(attempted) * 100
	return math.Round(pct*10) / 10
}

// FormatPercentage renders a percentage the way it appears on the
// certificate: one decimal place, or a bare 0 when nothing was attempted.
func FormatPercentage(correct, attempted int) string {
	if attempted <= 0 {
		return "0"
	}
	return strconv.FormatFloat(ScorePercentage(correct, attempted), 'f', 1, 64)
}

type Band string

const (
	BandVerySuperior Band = "Very Superior"
	BandSuperior     Band = "Superior"
	BandHighAverage  Band = "High Average"
	BandAverage      Band = "Average"
	BandBelowAverage Band = "Below Average"
)

func BandFor(pct float64) Band {
	switch {
	case pct >= 98:
		return BandVerySuperior
	case pct >= 90:
		return BandSuperior
	case pct >= 75:
		return BandHighAverage
	case pct >= 50:
		return BandAverage
	default:
		return BandBelowAverage
	}
}

// EstimateIQ maps a percentile onto the IQ scale (mean 100, sd 15). The
// percentile is clamped to [0.01, 99.99] so the tails stay finite.
func EstimateIQ(pct float64) int {
	p := math.Min(math.Max(pct/100, 0.0001), 0.9999)
	return int(math.Round(100 + 15*probit(p)))
}

// probit is Acklam's rational approximation of the inverse standard normal
// CDF.
func probit(p float64) float64 {
	const (
		a1 = -39.6968302866538
		a2 = 220.946098424521
		a3 = -275.928510446969
		a4 = 138.357751867269
		a5 = -30.6647980661472
		a6 = 2.50662827745924

		b1 = -54.4760987982241
		b2 = 161.585836858041
		b3 = -155.698979859887
		b4 = 66.8013118877197
		b5 = -13.2806815528857

		c1 = -0.00778489400243029
		c2 = -0.322396458041136
		c3 = -2.40075827716184
		c4 = -2.54973253934373
		c5 = 4.37466414146497
		c6 = 2.93816398269878

		d1 = 0.00778469570904146
		d2 = 0.32246712907004
		d3 = 2.445134137143
		d4 = 3.75440866190742

		pLow  = 0.02425
		pHigh = 1 - pLow
	)

	switch {
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c1*q+c2)*q+c3)*q+c4)*q+c5)*q + c6) /
			((((d1*q+d2)*q+d3)*q+d4)*q + 1)
	case p > pHigh:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c1*q+c2)*q+c3)*q+c4)*q+c5)*q + c6) /
			((((d1*q+d2)*q+d3)*q+d4)*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((a1*r+a2)*r+a3)*r+a4)*r+a5)*r + a6) * q /
			(((((b1*r+b2)*r+b3)*r+b4)*r+b5)*r + 1)
	}
}
