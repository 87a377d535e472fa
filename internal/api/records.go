package api

import (
	"context"
	"net/http"

	"github.com/greenplate/mealops/internal/mealplan"
)

// CreateLeftoverRequest is the body of POST /v1/leftovers.
type CreateLeftoverRequest struct {
	SchoolID int64         `json:"school_id"`
	Date     string        `json:"date"`
	MealType mealplan.Slot `json:"meal_type"`
	AmountKg float64       `json:"amount_kg"`
}

// UpdateLeftoverRequest is the body of PATCH /v1/leftovers.
type UpdateLeftoverRequest struct {
	Date     string        `json:"date"`
	MealType mealplan.Slot `json:"meal_type"`
	AmountKg float64       `json:"amount_kg"`
}

// CreateSkippedMealRequest is the body of POST /v1/skipped-meals.
type CreateSkippedMealRequest struct {
	SchoolID      int64         `json:"school_id"`
	Date          string        `json:"date"`
	MealType      mealplan.Slot `json:"meal_type"`
	SkippedCount  int           `json:"skipped_count"`
	TotalStudents int           `json:"total_students"`
}

// UpdateSkippedMealRequest is the body of PATCH /v1/skipped-meals.
type UpdateSkippedMealRequest struct {
	Date          string        `json:"date"`
	MealType      mealplan.Slot `json:"meal_type"`
	SkippedCount  int           `json:"skipped_count"`
	TotalStudents int           `json:"total_students"`
}

// CreateLeftover records the leftover weight for a slot of a date.
func (c *Client) CreateLeftover(ctx context.Context, schoolID int64, date string, slot mealplan.Slot, amountKg float64) error {
	return c.do(ctx, http.MethodPost, "/v1/leftovers", nil, CreateLeftoverRequest{
		SchoolID: schoolID,
		Date:     date,
		MealType: slot,
		AmountKg: amountKg,
	}, nil)
}

// UpdateLeftover replaces the leftover weight for a slot of a date.
func (c *Client) UpdateLeftover(ctx context.Context, date string, slot mealplan.Slot, amountKg float64) error {
	return c.do(ctx, http.MethodPatch, "/v1/leftovers", nil, UpdateLeftoverRequest{
		Date:     date,
		MealType: slot,
		AmountKg: amountKg,
	}, nil)
}

// CreateSkippedMeal records the missed-meal count for a slot of a date.
func (c *Client) CreateSkippedMeal(ctx context.Context, schoolID int64, date string, slot mealplan.Slot, skippedCount, totalStudents int) error {
	return c.do(ctx, http.MethodPost, "/v1/skipped-meals", nil, CreateSkippedMealRequest{
		SchoolID:      schoolID,
		Date:          date,
		MealType:      slot,
		SkippedCount:  skippedCount,
		TotalStudents: totalStudents,
	}, nil)
}

// UpdateSkippedMeal replaces the missed-meal count for a slot of a date.
func (c *Client) UpdateSkippedMeal(ctx context.Context, date string, slot mealplan.Slot, skippedCount, totalStudents int) error {
	return c.do(ctx, http.MethodPatch, "/v1/skipped-meals", nil, UpdateSkippedMealRequest{
		Date:          date,
		MealType:      slot,
		SkippedCount:  skippedCount,
		TotalStudents: totalStudents,
	}, nil)
}
