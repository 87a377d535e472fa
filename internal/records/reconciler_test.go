package records

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/greenplate/mealops/internal/mealplan"
)

type createCall struct {
	Slot          mealplan.Slot
	AmountKg      float64
	SkippedCount  int
	TotalStudents int
}

// fakeRecordAPI counts every call per operation and slot. failOp names one
// operation that should reject.
type fakeRecordAPI struct {
	mu sync.Mutex

	createLeftovers []createCall
	updateLeftovers []createCall
	createSkipped   []createCall
	updateSkipped   []createCall

	failOp string
}

func (f *fakeRecordAPI) record(op string, c createCall, target *[]createCall) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOp == op {
		return errors.New(op + " rejected")
	}
	*target = append(*target, c)
	return nil
}

func (f *fakeRecordAPI) CreateLeftover(ctx context.Context, schoolID int64, date string, slot mealplan.Slot, amountKg float64) error {
	return f.record("create-leftover", createCall{Slot: slot, AmountKg: amountKg}, &f.createLeftovers)
}

func (f *fakeRecordAPI) UpdateLeftover(ctx context.Context, date string, slot mealplan.Slot, amountKg float64) error {
	return f.record("update-leftover", createCall{Slot: slot, AmountKg: amountKg}, &f.updateLeftovers)
}

func (f *fakeRecordAPI) CreateSkippedMeal(ctx context.Context, schoolID int64, date string, slot mealplan.Slot, skippedCount, totalStudents int) error {
	return f.record("create-skipped", createCall{Slot: slot, SkippedCount: skippedCount, TotalStudents: totalStudents}, &f.createSkipped)
}

func (f *fakeRecordAPI) UpdateSkippedMeal(ctx context.Context, date string, slot mealplan.Slot, skippedCount, totalStudents int) error {
	return f.record("update-skipped", createCall{Slot: slot, SkippedCount: skippedCount, TotalStudents: totalStudents}, &f.updateSkipped)
}

func TestSaveNoOpPreconditions(t *testing.T) {
	cases := []struct {
		name string
		req  SaveRequest
	}{
		{"no date", SaveRequest{SchoolID: 1, Availability: mealplan.Availability{Lunch: true}}},
		{"no school", SaveRequest{Date: "2026-01-15", Availability: mealplan.Availability{Lunch: true}}},
		{"no available slot", SaveRequest{Date: "2026-01-15", SchoolID: 1}},
	}
	for _, tc := range cases {
		apiFake := &fakeRecordAPI{}
		store := NewStore()
		reconciler := NewReconciler(apiFake, store)

		if err := reconciler.Save(context.Background(), tc.req); err != nil {
			t.Errorf("%s: Save = %v, want silent no-op", tc.name, err)
		}
		if n := len(apiFake.createLeftovers) + len(apiFake.createSkipped) + len(apiFake.updateLeftovers) + len(apiFake.updateSkipped); n != 0 {
			t.Errorf("%s: %d calls issued, want 0", tc.name, n)
		}
		if store.Has("2026-01-15") {
			t.Errorf("%s: cache written on no-op", tc.name)
		}
	}
}

func TestSaveCreatesLunchOnly(t *testing.T) {
	apiFake := &fakeRecordAPI{}
	store := NewStore()
	reconciler := NewReconciler(apiFake, store)

	err := reconciler.Save(context.Background(), SaveRequest{
		Date:         "2026-01-15",
		SchoolID:     7,
		Availability: mealplan.Availability{Lunch: true},
		Values:       FormValues{LunchMissed: "4", LunchLeftoversKg: "1.5"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(apiFake.createLeftovers) != 1 || len(apiFake.createSkipped) != 1 {
		t.Fatalf("create calls = %d leftover / %d skipped, want 1 / 1",
			len(apiFake.createLeftovers), len(apiFake.createSkipped))
	}
	if len(apiFake.updateLeftovers)+len(apiFake.updateSkipped) != 0 {
		t.Error("update calls issued on the create path")
	}
	if got := apiFake.createLeftovers[0]; got.Slot != mealplan.SlotLunch || got.AmountKg != 1.5 {
		t.Errorf("create leftover = %+v, want lunch 1.5kg", got)
	}
	if got := apiFake.createSkipped[0]; got.SkippedCount != 4 || got.TotalStudents != 5 {
		t.Errorf("create skipped = %+v, want 4 missed, 5 total", got)
	}

	rec, ok := store.Get("2026-01-15")
	if !ok {
		t.Fatal("cache not updated after successful save")
	}
	want := DailyRecord{LunchMissed: 4, LunchLeftoversKg: 1.5}
	if rec != want {
		t.Errorf("cache = %+v, want %+v", rec, want)
	}
}

func TestSaveUpdatesExistingRecord(t *testing.T) {
	apiFake := &fakeRecordAPI{}
	store := NewStore()
	store.Merge("2026-01-15", SlotUpdate{Lunch: &SlotValues{Missed: 2, LeftoversKg: 1.0}})
	reconciler := NewReconciler(apiFake, store)

	err := reconciler.Save(context.Background(), SaveRequest{
		Date:         "2026-01-15",
		SchoolID:     7,
		Availability: mealplan.Availability{Lunch: true},
		Values:       FormValues{LunchMissed: "7", LunchLeftoversKg: "0.8"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(apiFake.updateLeftovers) != 1 || len(apiFake.updateSkipped) != 1 {
		t.Fatalf("update calls = %d leftover / %d skipped, want 1 / 1",
			len(apiFake.updateLeftovers), len(apiFake.updateSkipped))
	}
	if len(apiFake.createLeftovers)+len(apiFake.createSkipped) != 0 {
		t.Error("create calls issued on the update path")
	}
	// Updates do not recompute the denominator.
	if got := apiFake.updateSkipped[0]; got.SkippedCount != 7 || got.TotalStudents != 0 {
		t.Errorf("update skipped = %+v, want 7 missed, 0 total", got)
	}

	rec, _ := store.Get("2026-01-15")
	if rec.LunchMissed != 7 || rec.LunchLeftoversKg != 0.8 {
		t.Errorf("cache = %+v, want lunch 7 / 0.8", rec)
	}
}

func TestSaveNeverTouchesUnavailableSlot(t *testing.T) {
	apiFake := &fakeRecordAPI{}
	store := NewStore()
	reconciler := NewReconciler(apiFake, store)

	err := reconciler.Save(context.Background(), SaveRequest{
		Date:         "2026-01-15",
		SchoolID:     7,
		Availability: mealplan.Availability{Dinner: true},
		Values: FormValues{
			LunchMissed: "9", LunchLeftoversKg: "9",
			DinnerMissed: "5", DinnerLeftoversKg: "2.0",
		},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	for _, call := range append(apiFake.createLeftovers, apiFake.createSkipped...) {
		if call.Slot == mealplan.SlotLunch {
			t.Error("lunch call issued although lunch is unavailable")
		}
	}
	if len(apiFake.createLeftovers) != 1 || len(apiFake.createSkipped) != 1 {
		t.Errorf("dinner create calls = %d / %d, want 1 / 1",
			len(apiFake.createLeftovers), len(apiFake.createSkipped))
	}

	rec, _ := store.Get("2026-01-15")
	want := DailyRecord{DinnerMissed: 5, DinnerLeftoversKg: 2.0}
	if rec != want {
		t.Errorf("cache = %+v, want %+v", rec, want)
	}
}

func TestSaveFailureLeavesCacheUntouched(t *testing.T) {
	apiFake := &fakeRecordAPI{failOp: "create-skipped"}
	store := NewStore()
	store.Merge("2026-01-14", SlotUpdate{Lunch: &SlotValues{Missed: 1, LeftoversKg: 0.2}})
	reconciler := NewReconciler(apiFake, store)

	err := reconciler.Save(context.Background(), SaveRequest{
		Date:         "2026-01-15",
		SchoolID:     7,
		Availability: mealplan.Availability{Lunch: true, Dinner: true},
		Values:       FormValues{LunchMissed: "4", DinnerMissed: "2"},
	})

	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("Save error = %v, want *SaveError", err)
	}
	if saveErr.Date != "2026-01-15" {
		t.Errorf("SaveError.Date = %q, want 2026-01-15", saveErr.Date)
	}
	if store.Has("2026-01-15") {
		t.Error("cache written for the failed date")
	}
	// Neighboring entries are untouched.
	if rec, _ := store.Get("2026-01-14"); rec.LunchMissed != 1 {
		t.Errorf("unrelated cache entry changed: %+v", rec)
	}
}

func TestEditorLifecycle(t *testing.T) {
	apiFake := &fakeRecordAPI{}
	store := NewStore()
	store.Merge("2026-01-15", SlotUpdate{Lunch: &SlotValues{Missed: 2, LeftoversKg: 1.0}})
	reconciler := NewReconciler(apiFake, store)

	editor := NewEditor(reconciler, store, "2026-01-15")
	if !editor.HasRecord() {
		t.Error("HasRecord should see the cached record")
	}
	if editor.Values.LunchMissed != "2" || editor.Values.LunchLeftoversKg != "1" {
		t.Errorf("seeded values = %+v", editor.Values)
	}

	editor.Values.LunchMissed = "7"
	if err := editor.Save(context.Background(), 7, mealplan.Availability{Lunch: true}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec, _ := store.Get("2026-01-15"); rec.LunchMissed != 7 {
		t.Errorf("cache after editor save = %+v, want lunch missed 7", rec)
	}

	fresh := NewEditor(reconciler, store, "2026-01-20")
	if fresh.HasRecord() {
		t.Error("editor for an unrecorded date should start without a record")
	}
	if fresh.Values != (FormValues{}) {
		t.Errorf("editor for an unrecorded date should start empty, got %+v", fresh.Values)
	}
}
