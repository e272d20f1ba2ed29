// Package interest holds the day-count and simple-interest arithmetic shared
// by every projection in the app.
//
// Policy notes:
//   - A fixed 365-day year is used everywhere; there is no leap-year
//     adjustment. This is a documented simplification, not a bug.
//   - Day counts are absolute (order-independent) and rounded up: a deposit
//     spanning any part of a day earns that day in full.
//   - Parsing is lenient. Dirty inputs coerce to zero instead of erroring so
//     one bad record can never take down the dashboard.
package interest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DaysPerYear is the fixed year length used for tenure arithmetic.
const DaysPerYear = 365

// DaysBetween returns the number of whole days between two instants,
// order-independent, fractional days rounded up.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// YearsBetween converts the day count to years on the fixed 365-day basis.
func YearsBetween(a, b time.Time) float64 {
	return float64(DaysBetween(a, b)) / DaysPerYear
}

// SimpleInterest projects the interest earned on principal at ratePercent
// per annum over years.
func SimpleInterest(principal, ratePercent, years float64) float64 {
	return principal * (ratePercent / 100) * years
}

// ParseAmount coerces a loosely-typed value to a number. Numbers pass
// through, numeric strings parse, everything else (including NaN) is 0.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ParseDate parses an ISO "YYYY-MM-DD" date. The second return is false for
// anything unparseable; callers treat that as a zero-length tenure.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
