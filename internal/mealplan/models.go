package mealplan

// Meal slots as the planning service names them.
type Slot string

const (
	SlotLunch  Slot = "LUNCH"
	SlotDinner Slot = "DINNER"
)

// Availability says whether a planned menu exists for each slot of a date.
// The zero value (nothing planned) is meaningful: such a date is not recordable.
type Availability struct {
	Lunch  bool
	Dinner bool
}

// Has reports whether the given slot is planned.
func (a Availability) Has(slot Slot) bool {
	switch slot {
	case SlotLunch:
		return a.Lunch
	case SlotDinner:
		return a.Dinner
	}
	return false
}

// None reports whether neither slot is planned.
func (a Availability) None() bool {
	return !a.Lunch && !a.Dinner
}

// MenuEntry is one row of the monthly menu listing.
type MenuEntry struct {
	Date     string `json:"date"` // YYYY-MM-DD
	MealType Slot   `json:"meal_type"`
}
