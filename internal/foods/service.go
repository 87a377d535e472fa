// Package foods is the lookup service over the remote food/nutrition
// reference, backing the food search screens.
package foods

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/greenplate/mealops/internal/api"
)

var ErrEmptyQuery = errors.New("search query is empty")

// Searcher is the slice of the API client this service needs.
type Searcher interface {
	SearchFoods(ctx context.Context, query string, page int) (*api.FoodsResponse, error)
}

// FoodView is a food row shaped for display.
type FoodView struct {
	Name     string
	Summary  string // per-100g facts, preformatted
	Kcal     float64
	ProteinG float64
	FatG     float64
	CarbsG   float64
}

// Page is one page of display-ready results.
type Page struct {
	Foods []FoodView
	Total int
	Page  int
}

type Service struct {
	searcher Searcher
}

func NewService(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Search queries the food reference. The query is trimmed; an empty query is
// rejected rather than sent upstream.
func (s *Service) Search(ctx context.Context, query string, page int) (*Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	resp, err := s.searcher.SearchFoods(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}

	views := make([]FoodView, 0, len(resp.Foods))
	for _, food := range resp.Foods {
		views = append(views, FoodView{
			Name: food.Name,
			Summary: fmt.Sprintf("%.0f kcal, %.1fg protein, %.1fg fat, %.1fg carbs (per 100g)",
				food.CaloriesKcal, food.ProteinG, food.FatG, food.CarbsG),
			Kcal:     food.CaloriesKcal,
			ProteinG: food.ProteinG,
			FatG:     food.FatG,
			CarbsG:   food.CarbsG,
		})
	}
	return &Page{Foods: views, Total: resp.Total, Page: page}, nil
}
