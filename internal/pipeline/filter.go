package pipeline

import (
	"fmt"
	"strings"

	"ecommerce-dashboard/internal/model"
	"ecommerce-dashboard/pkg/utils"
)

// DefaultRange spans the earliest to the latest purchase timestamp of v.
// It is the zero range when v has no purchase timestamps.
func DefaultRange(v model.View) model.DateRange {
	min, max, ok := model.PurchaseSpan(v)
	if !ok {
		return model.DateRange{}
	}
	return model.DateRange{Start: min, End: max}
}

// FilterByPurchaseDate returns the rows of v purchased within r, in input order.
// Rows without a purchase timestamp never match. An inverted range yields an empty view.
func FilterByPurchaseDate(v model.View, r model.DateRange) model.View {
	if r.Inverted() {
		return model.NewSubView(v, nil)
	}

	n := v.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		t := v.At(i).PurchasedAt
		if t.IsZero() {
			continue
		}
		if r.Contains(t) {
			indices = append(indices, i)
		}
	}
	return model.NewSubView(v, indices)
}

// ParseRange turns calendar-date inputs (YYYY-MM-DD) into a DateRange.
// start maps to the beginning of its day and end to the end of its day;
// a blank value falls back to the matching bound of def.
func ParseRange(start, end string, def model.DateRange) (model.DateRange, error) {
	r := def
	if strings.TrimSpace(start) != "" {
		t, err := utils.ParseDate(start)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("invalid start date %q: want YYYY-MM-DD", start)
		}
		r.Start = t
	}
	if strings.TrimSpace(end) != "" {
		t, err := utils.ParseDate(end)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("invalid end date %q: want YYYY-MM-DD", end)
		}
		r.End = utils.EndOfDay(t)
	}
	return r, nil
}
