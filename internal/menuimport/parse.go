package menuimport

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/kalambet/restora/internal/restaurant"
)

// Item is one priced line of a menu.
type Item struct {
	Name     string
	Price    float64
	Category string
}

// Fields converts the item into a create request.
func (it Item) Fields() restaurant.MenuItemFields {
	f := restaurant.MenuItemFields{Name: &it.Name, Price: &it.Price}
	if it.Category != "" {
		f.Category = &it.Category
	}
	return f
}

// priceLine matches "Name ..... ₹850" style lines. Leaders may be dots,
// middle dots, ellipses, dashes or whitespace.
var priceLine = regexp.MustCompile(`^(.*?\pL.*?)[\s.·…_-]*(?:₹|Rs\.?|INR)?\s*(\d{1,6}(?:[.,]\d{1,2})?)\s*/?-?$`)

var thousands = regexp.MustCompile(`(\d),(\d{3})\b`)

// Parse reads a plain-text menu. A line ending in a price becomes an item in
// the current category; a line with letters but no price starts a new category.
func Parse(text string) []Item {
	var items []Item
	category := ""

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !hasLetter(line) {
			continue
		}

		if m := priceLine.FindStringSubmatch(thousands.ReplaceAllString(line, "$1$2")); m != nil {
			name := strings.TrimRight(strings.TrimSpace(m[1]), ".·…_- ")
			price, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
			if err == nil && price > 0 && name != "" {
				items = append(items, Item{Name: name, Price: price, Category: category})
				continue
			}
		}

		category = strings.Trim(line, ":- ")
	}
	return items
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

// Creator stores a menu item.
type Creator interface {
	CreateMenuItem(ctx context.Context, f restaurant.MenuItemFields) (restaurant.MenuItem, error)
}

// importConcurrency bounds simultaneous create requests.
const importConcurrency = 4

// Import creates every item through c and returns the stored items in input
// order. The first failure cancels the remaining requests.
func Import(ctx context.Context, c Creator, items []Item) ([]restaurant.MenuItem, error) {
	out := make([]restaurant.MenuItem, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)
	for i, it := range items {
		g.Go(func() error {
			created, err := c.CreateMenuItem(ctx, it.Fields())
			if err != nil {
				return fmt.Errorf("creating %q: %w", it.Name, err)
			}
			slog.Debug("imported menu item", "id", created.ID, "name", created.Name)
			out[i] = created
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
