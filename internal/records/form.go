package records

import (
	"math"
	"strconv"
	"strings"
)

// FormValues is the string-typed editable mirror of a DailyRecord. Keeping
// the fields as strings tolerates intermediate input; values are coerced to
// numbers only at save time.
type FormValues struct {
	LunchMissed       string
	LunchLeftoversKg  string
	DinnerMissed      string
	DinnerLeftoversKg string
}

// FormFromRecord seeds form values from a cached record. With no cached
// record the form starts empty.
func FormFromRecord(rec DailyRecord, ok bool) FormValues {
	if !ok {
		return FormValues{}
	}
	return FormValues{
		LunchMissed:       strconv.Itoa(rec.LunchMissed),
		LunchLeftoversKg:  strconv.FormatFloat(rec.LunchLeftoversKg, 'f', -1, 64),
		DinnerMissed:      strconv.Itoa(rec.DinnerMissed),
		DinnerLeftoversKg: strconv.FormatFloat(rec.DinnerLeftoversKg, 'f', -1, 64),
	}
}

// coerceKg converts a form field to a weight. Bad input is never an error:
// anything that does not parse to a finite non-negative number becomes 0.
func coerceKg(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// coerceCount converts a form field to a head count under the same rule.
func coerceCount(s string) int {
	return int(coerceKg(s))
}
