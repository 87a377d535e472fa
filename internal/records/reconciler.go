package records

import (
	"context"
	"fmt"
	"sync"

	"github.com/greenplate/mealops/internal/mealplan"
)

// RecordAPI is the slice of the remote meal-service API the reconciler needs.
// Leftover weights and skipped-meal counts are separate aggregates server
// side, so each slot takes two calls.
type RecordAPI interface {
	CreateLeftover(ctx context.Context, schoolID int64, date string, slot mealplan.Slot, amountKg float64) error
	UpdateLeftover(ctx context.Context, date string, slot mealplan.Slot, amountKg float64) error
	CreateSkippedMeal(ctx context.Context, schoolID int64, date string, slot mealplan.Slot, skippedCount, totalStudents int) error
	UpdateSkippedMeal(ctx context.Context, date string, slot mealplan.Slot, skippedCount, totalStudents int) error
}

// SaveError wraps the first failure among the calls of a save. The cache is
// left untouched when it is returned, so the user can retry from the same
// form state.
type SaveError struct {
	Date string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save for %s failed: %v", e.Date, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// SaveRequest is one save invocation for a selected date.
type SaveRequest struct {
	Date         string
	SchoolID     int64
	Availability mealplan.Availability
	Values       FormValues
}

// Reconciler turns edited form values into the remote create/update calls for
// a date and folds the outcome back into the cache.
type Reconciler struct {
	api   RecordAPI
	store *Store
}

func NewReconciler(api RecordAPI, store *Store) *Reconciler {
	return &Reconciler{api: api, store: store}
}

// Save issues the remote calls for every available slot of the request's
// date and, when all of them succeed, merges exactly those slots into the
// cache. Slots without a planned meal are never touched, remotely or locally.
//
// With no selected date, no school context, or no available slot the save is
// a silent no-op; the UI should not let those states reach here, but the
// reconciler defends against them anyway.
//
// The calls (up to four) run concurrently and are unordered relative to each
// other; Save waits for all of them. Any failure yields a *SaveError and
// leaves the cache at its pre-save value, even though some calls may have
// succeeded server side.
func (r *Reconciler) Save(ctx context.Context, req SaveRequest) error {
	if req.Date == "" || req.SchoolID == 0 || req.Availability.None() {
		return nil
	}

	_, exists := r.store.Get(req.Date)

	var ops []func(context.Context) error
	var upd SlotUpdate
	if req.Availability.Lunch {
		vals := SlotValues{
			Missed:      coerceCount(req.Values.LunchMissed),
			LeftoversKg: coerceKg(req.Values.LunchLeftoversKg),
		}
		upd.Lunch = &vals
		ops = append(ops, r.slotOps(req, mealplan.SlotLunch, vals, exists)...)
	}
	if req.Availability.Dinner {
		vals := SlotValues{
			Missed:      coerceCount(req.Values.DinnerMissed),
			LeftoversKg: coerceKg(req.Values.DinnerLeftoversKg),
		}
		upd.Dinner = &vals
		ops = append(ops, r.slotOps(req, mealplan.SlotDinner, vals, exists)...)
	}

	errs := make([]error, len(ops))
	var wg sync.WaitGroup
	for i, op := range ops {
		wg.Add(1)
		go func(i int, op func(context.Context) error) {
			defer wg.Done()
			errs[i] = op(ctx)
		}(i, op)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return &SaveError{Date: req.Date, Err: err}
		}
	}

	r.store.Merge(req.Date, upd)
	return nil
}

// slotOps builds the two calls for one slot. Creates estimate total_students
// as missed+1; updates send 0, meaning the denominator is not recomputed on
// update.
func (r *Reconciler) slotOps(req SaveRequest, slot mealplan.Slot, vals SlotValues, exists bool) []func(context.Context) error {
	if exists {
		return []func(context.Context) error{
			func(ctx context.Context) error {
				return r.api.UpdateLeftover(ctx, req.Date, slot, vals.LeftoversKg)
			},
			func(ctx context.Context) error {
				return r.api.UpdateSkippedMeal(ctx, req.Date, slot, vals.Missed, 0)
			},
		}
	}
	return []func(context.Context) error{
		func(ctx context.Context) error {
			return r.api.CreateLeftover(ctx, req.SchoolID, req.Date, slot, vals.LeftoversKg)
		},
		func(ctx context.Context) error {
			return r.api.CreateSkippedMeal(ctx, req.SchoolID, req.Date, slot, vals.Missed, vals.Missed+1)
		},
	}
}
