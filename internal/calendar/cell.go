package calendar

import (
	"strconv"

	"github.com/greenplate/mealops/internal/mealplan"
	"github.com/greenplate/mealops/internal/records"
)

// Placeholder shown for a slot that has no recorded value yet.
const Placeholder = "-"

// CellInput is everything a day cell's render state is derived from. The
// mapping is one way: rendering a cell has no state or network side effects.
type CellInput struct {
	Day          int    // 0 for a blank filler cell
	Date         string // canonical YYYY-MM-DD, empty for blanks
	Today        string // server-supplied reference date
	DaysInMonth  int
	Selected     bool
	ModalOpen    bool
	Record       *records.DailyRecord
	Availability mealplan.Availability
}

// SlotDetail is the rendered lunch or dinner block of an in-month cell.
type SlotDetail struct {
	Slot       mealplan.Slot
	Missed     string
	LeftoverKg string
}

// CellState is the render descriptor for one grid cell. Disabled cells take
// no pointer or keyboard interaction.
type CellState struct {
	Label     string
	Disabled  bool
	Selected  bool
	HasRecord bool
	Lunch     *SlotDetail
	Dinner    *SlotDetail
}

// CellFor derives the render state for one cell.
//
// A cell is disabled iff it is blank, outside the month's day range, or its
// date lies strictly after today. It renders as selected only while the
// record modal is open, so closing the modal never leaves a stale
// selected-looking cell behind.
func CellFor(in CellInput) CellState {
	out := CellState{
		Disabled: in.Day < 1 || in.Day > in.DaysInMonth || (in.Date != "" && in.Today != "" && in.Date > in.Today),
		Selected: in.Selected && in.ModalOpen,
	}
	if in.Day < 1 || in.Day > in.DaysInMonth {
		return out
	}

	out.Label = strconv.Itoa(in.Day)
	out.HasRecord = in.Record != nil

	if in.Availability.Lunch {
		out.Lunch = slotDetail(mealplan.SlotLunch, in.Record)
	}
	if in.Availability.Dinner {
		out.Dinner = slotDetail(mealplan.SlotDinner, in.Record)
	}
	return out
}

func slotDetail(slot mealplan.Slot, rec *records.DailyRecord) *SlotDetail {
	detail := &SlotDetail{Slot: slot, Missed: Placeholder, LeftoverKg: Placeholder}
	if rec == nil {
		return detail
	}
	switch slot {
	case mealplan.SlotLunch:
		detail.Missed = strconv.Itoa(rec.LunchMissed)
		detail.LeftoverKg = strconv.FormatFloat(rec.LunchLeftoversKg, 'f', -1, 64)
	case mealplan.SlotDinner:
		detail.Missed = strconv.Itoa(rec.DinnerMissed)
		detail.LeftoverKg = strconv.FormatFloat(rec.DinnerLeftoversKg, 'f', -1, 64)
	}
	return detail
}
