package helpers

import (
	"net/url"
	"strings"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/shopspring/decimal"
)

// ParseProductFilter reads catalog filters from a query string. Malformed or
// negative prices are dropped rather than rejected, and an unknown sort falls
// back to newest.
func ParseProductFilter(q url.Values) repositories.ProductFilter {
	sort := repositories.ProductSort(strings.TrimSpace(q.Get("sort")))
	if !sort.Valid() {
		sort = repositories.SortNewest
	}
	return repositories.ProductFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.TrimSpace(q.Get("category")),
		MinPrice: parsePrice(q.Get("min_price")),
		MaxPrice: parsePrice(q.Get("max_price")),
		Sort:     sort,
	}
}

func parsePrice(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}
