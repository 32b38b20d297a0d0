package restaurant

import (
	"fmt"
	"sort"
	"time"
)

// SummarizeByItem groups sales by item id (or name when the id is missing),
// highest revenue first.
func SummarizeByItem(sales []Sale) []ItemSummary {
	index := make(map[string]int)
	var out []ItemSummary
	for _, s := range sales {
		key := s.ItemID
		if key == "" {
			key = "name:" + s.ItemName
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, ItemSummary{ItemID: s.ItemID, ItemName: s.ItemName})
		}
		out[i].TotalQuantity += s.Quantity
		out[i].TotalRevenue += s.Total
		out[i].OrderCount++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out
}

// SummarizeByDay groups sales by UTC calendar day, most recent day first.
func SummarizeByDay(sales []Sale) []DaySummary {
	index := make(map[string]int)
	var out []DaySummary
	for _, s := range sales {
		day := time.Unix(s.CreatedAt, 0).UTC().Format(time.DateOnly)
		i, ok := index[day]
		if !ok {
			i = len(out)
			index[day] = i
			out = append(out, DaySummary{Date: day})
		}
		out[i].TotalQuantity += s.Quantity
		out[i].TotalRevenue += s.Total
		out[i].OrderCount++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp and
// returns Unix seconds. An empty string yields 0.
func ParseDate(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.Unix(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, invalid("invalid date %q", s)
	}
	return t.Unix(), nil
}

// FormatPrice renders a price the way the menu prints it.
func FormatPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("₹%d", int64(p))
	}
	return fmt.Sprintf("₹%.2f", p)
}
