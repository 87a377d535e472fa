package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/greenplate/mealops/internal/mealplan"
)

// MenusResponse is the monthly menu listing.
type MenusResponse struct {
	Menus []mealplan.MenuEntry `json:"menus"`
}

// ListMonthlyMenus fetches every planned menu for (year, month). It satisfies
// mealplan.MenuLister.
func (c *Client) ListMonthlyMenus(ctx context.Context, year int, month time.Month) ([]mealplan.MenuEntry, error) {
	query := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(int(month))},
	}

	var resp MenusResponse
	if err := c.do(ctx, http.MethodGet, "/v1/menus", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Menus, nil
}
