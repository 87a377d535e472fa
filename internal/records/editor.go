package records

import (
	"context"

	"github.com/greenplate/mealops/internal/mealplan"
)

// Editor binds the editing surface for one selected date to the shared cache.
// It is created when a date is selected and discarded when the editor closes
// or a different date is selected.
type Editor struct {
	date       string
	reconciler *Reconciler
	store      *Store

	// Values is the live form state; callers mutate it field by field as the
	// operator types.
	Values FormValues
}

// NewEditor opens an editor for a date, pre-filling the form from the cache
// when a record exists.
func NewEditor(reconciler *Reconciler, store *Store, date string) *Editor {
	rec, ok := store.Get(date)
	return &Editor{
		date:       date,
		reconciler: reconciler,
		store:      store,
		Values:     FormFromRecord(rec, ok),
	}
}

// Date returns the date this editor is bound to.
func (e *Editor) Date() string { return e.date }

// HasRecord reports whether the cache holds a record for the bound date,
// which decides between the create and update paths on save.
func (e *Editor) HasRecord() bool { return e.store.Has(e.date) }

// Save runs the reconciler for the bound date. On a *SaveError the form
// values are retained so no data entry is lost.
func (e *Editor) Save(ctx context.Context, schoolID int64, avail mealplan.Availability) error {
	return e.reconciler.Save(ctx, SaveRequest{
		Date:         e.date,
		SchoolID:     schoolID,
		Availability: avail,
		Values:       e.Values,
	})
}
