package mealplan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrStale is returned when a resolution finishes after a newer one has
// already been started. The result is discarded and resolver state is left
// as the newer resolution wrote it.
var ErrStale = errors.New("stale availability result")

// MenuLister fetches the monthly menu listing from the planning service.
type MenuLister interface {
	ListMonthlyMenus(ctx context.Context, year int, month time.Month) ([]MenuEntry, error)
}

// Resolver derives per-date meal availability from the monthly menu listing.
// The mapping is rebuilt wholesale on every resolution; only the most recent
// resolution may install state ("last navigation wins").
type Resolver struct {
	lister MenuLister

	mu      sync.Mutex
	gen     uint64
	current map[string]Availability
	loading bool
}

func NewResolver(lister MenuLister) *Resolver {
	return &Resolver{
		lister:  lister,
		current: make(map[string]Availability),
	}
}

// Resolve fetches the menu listing for (year, month) and installs the derived
// availability mapping. Rows are folded additively: a date accumulates flags
// from separate lunch and dinner rows, a row never clears the other slot.
//
// A fetch failure is recoverable: an empty mapping is installed (no date is
// recordable until the month is resolved again) and the wrapped error is
// returned for logging by the caller.
func (r *Resolver) Resolve(ctx context.Context, year int, month time.Month) (map[string]Availability, error) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.loading = true
	r.mu.Unlock()

	entries, err := r.lister.ListMonthlyMenus(ctx, year, month)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		// A newer resolution owns the state now.
		return nil, ErrStale
	}
	r.loading = false

	if err != nil {
		log.Printf("mealplan: monthly menu fetch failed for %04d-%02d: %v", year, int(month), err)
		r.current = make(map[string]Availability)
		return r.current, fmt.Errorf("list monthly menus: %w", err)
	}

	byDate := make(map[string]Availability, len(entries))
	for _, entry := range entries {
		a := byDate[entry.Date]
		switch entry.MealType {
		case SlotLunch:
			a.Lunch = true
		case SlotDinner:
			a.Dinner = true
		default:
			// Unknown meal types are ignored rather than rejected.
			continue
		}
		byDate[entry.Date] = a
	}
	r.current = byDate
	return byDate, nil
}

// Current returns the active availability mapping and whether a resolution is
// in flight. The returned map must be treated as read-only.
func (r *Resolver) Current() (map[string]Availability, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.loading
}
