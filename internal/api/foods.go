package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Food is one row of the food/nutrition reference, facts per 100 g.
type Food struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	FatG         float64 `json:"fat_g"`
	CarbsG       float64 `json:"carbs_g"`
}

// FoodsResponse is one page of food search results.
type FoodsResponse struct {
	Foods []Food `json:"foods"`
	Total int    `json:"total"`
}

// SearchFoods queries the food reference by keyword. Pages are 1-based.
func (c *Client) SearchFoods(ctx context.Context, query string, page int) (*FoodsResponse, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	}

	var resp FoodsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/foods", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
