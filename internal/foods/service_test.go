package foods

import (
	"context"
	"errors"
	"testing"

	"github.com/greenplate/mealops/internal/api"
)

type fakeSearcher struct {
	gotQuery string
	gotPage  int
	resp     *api.FoodsResponse
	err      error
}

func (f *fakeSearcher) SearchFoods(ctx context.Context, query string, page int) (*api.FoodsResponse, error) {
	f.gotQuery = query
	f.gotPage = page
	return f.resp, f.err
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	service := NewService(&fakeSearcher{})
	if _, err := service.Search(context.Background(), "   ", 1); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("error = %v, want ErrEmptyQuery", err)
	}
}

func TestSearchTrimsAndMaps(t *testing.T) {
	searcher := &fakeSearcher{resp: &api.FoodsResponse{
		Total: 1,
		Foods: []api.Food{{Name: "Kimchi", CaloriesKcal: 15, ProteinG: 1.1, FatG: 0.5, CarbsG: 2.4}},
	}}
	service := NewService(searcher)

	page, err := service.Search(context.Background(), "  kimchi ", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if searcher.gotQuery != "kimchi" {
		t.Errorf("query sent = %q, want trimmed", searcher.gotQuery)
	}
	if searcher.gotPage != 1 {
		t.Errorf("page sent = %d, want clamped to 1", searcher.gotPage)
	}
	if len(page.Foods) != 1 || page.Total != 1 {
		t.Fatalf("page = %+v", page)
	}
	food := page.Foods[0]
	if food.Name != "Kimchi" || food.Kcal != 15 {
		t.Errorf("food = %+v", food)
	}
	if food.Summary != "15 kcal, 1.1g protein, 0.5g fat, 2.4g carbs (per 100g)" {
		t.Errorf("summary = %q", food.Summary)
	}
}

func TestSearchWrapsUpstreamError(t *testing.T) {
	boom := errors.New("boom")
	service := NewService(&fakeSearcher{err: boom})

	if _, err := service.Search(context.Background(), "rice", 1); !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped boom", err)
	}
}
