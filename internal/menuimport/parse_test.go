package menuimport

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kalambet/restora/internal/restaurant"
)

func TestParse(t *testing.T) {
	text := `
RESTORA

Appetizers:
Escargot ........ 750
French Onion Soup … ₹420

Main Course
Coq au Vin               850
Bouillabaisse ..... Rs. 1,200
Beef Bourguignon - 1100/-

Desserts
Crêpes 4,50
   
2026
`
	got := Parse(text)
	want := []Item{
		{Name: "Escargot", Price: 750, Category: "Appetizers"},
		{Name: "French Onion Soup", Price: 420, Category: "Appetizers"},
		{Name: "Coq au Vin", Price: 850, Category: "Main Course"},
		{Name: "Bouillabaisse", Price: 1200, Category: "Main Course"},
		{Name: "Beef Bourguignon", Price: 1100, Category: "Main Course"},
		{Name: "Crêpes", Price: 4.5, Category: "Desserts"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d items, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParse_ItemsBeforeAnyCategory(t *testing.T) {
	got := Parse("Ratatouille .... 650")
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	if got[0].Category != "" {
		t.Errorf("category = %q, want empty", got[0].Category)
	}
	f := got[0].Fields()
	if f.Category != nil {
		t.Error("empty category should be left for the server default")
	}
	if *f.Name != "Ratatouille" || *f.Price != 650 {
		t.Errorf("fields = %q %v", *f.Name, *f.Price)
	}
}

func TestParse_NoItems(t *testing.T) {
	if got := Parse("Just a heading\n\n---\n"); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

type fakeCreator struct {
	mu       sync.Mutex
	created  []string
	inFlight atomic.Int32
	peak     atomic.Int32
	failOn   string
}

func (f *fakeCreator) CreateMenuItem(ctx context.Context, fields restaurant.MenuItemFields) (restaurant.MenuItem, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if *fields.Name == f.failOn {
		return restaurant.MenuItem{}, errors.New("boom")
	}
	f.mu.Lock()
	f.created = append(f.created, *fields.Name)
	f.mu.Unlock()
	return restaurant.MenuItem{ID: "id-" + *fields.Name, Name: *fields.Name, Price: *fields.Price}, nil
}

func TestImport(t *testing.T) {
	var items []Item
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		items = append(items, Item{Name: name, Price: 1})
	}
	c := &fakeCreator{}

	out, err := Import(context.Background(), c, items)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(out) != len(items) {
		t.Fatalf("got %d items, want %d", len(out), len(items))
	}
	for i, it := range out {
		if it.Name != items[i].Name {
			t.Errorf("out[%d] = %q, want %q", i, it.Name, items[i].Name)
		}
	}
	if p := c.peak.Load(); p > importConcurrency {
		t.Errorf("peak concurrency = %d, want <= %d", p, importConcurrency)
	}
}

func TestImport_Failure(t *testing.T) {
	c := &fakeCreator{failOn: "bad"}
	_, err := Import(context.Background(), c, []Item{{Name: "ok", Price: 1}, {Name: "bad", Price: 2}})
	if err == nil {
		t.Fatal("expected error")
	}
}
