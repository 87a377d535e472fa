package records

// DailyRecord is the operationally recorded outcome for one date: how many
// enrolled people missed each meal and how much food was left over, per slot.
// A record exists only for dates that were fetched or successfully saved.
type DailyRecord struct {
	LunchMissed       int
	LunchLeftoversKg  float64
	DinnerMissed      int
	DinnerLeftoversKg float64
}

// SlotValues carries the numbers for a single slot.
type SlotValues struct {
	Missed      int
	LeftoversKg float64
}

// SlotUpdate names the slots a merge should touch. A nil slot is left at its
// previously cached value (zero for dates with no prior entry).
type SlotUpdate struct {
	Lunch  *SlotValues
	Dinner *SlotValues
}
