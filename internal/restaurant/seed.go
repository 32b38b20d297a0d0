package restaurant

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kalambet/restora/internal/storage"
)

const seedImageBase = "https://raw.githubusercontent.com/karthi-212/Restora/refs/heads/main/assests/images/French%20Food%20"

var defaultMenu = []struct {
	name     string
	price    float64
	category string
}{
	{"Coq au Vin", 850, "Main Course"},
	{"Bouillabaisse", 1200, "Main Course"},
	{"Ratatouille", 650, "Vegetarian"},
	{"Escargot", 750, "Appetizer"},
	{"Crêpes", 450, "Dessert"},
	{"French Onion Soup", 420, "Soup"},
	{"Beef Bourguignon", 1100, "Main Course"},
}

// SeedMenu fills an empty menu with the house dishes. It returns the number
// of items written, 0 when the menu already had entries.
func (r *Repository) SeedMenu() (int, error) {
	n, err := r.store.CountDocuments(CollectionMenu)
	if err != nil {
		return 0, fmt.Errorf("counting menu items: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	docs := make([]storage.Document, 0, len(defaultMenu))
	for i, d := range defaultMenu {
		item := MenuItem{
			ID:        uuid.NewString(),
			Name:      d.name,
			Price:     d.price,
			Image:     fmt.Sprintf("%s%d.png", seedImageBase, i+1),
			Category:  d.category,
			Available: true,
		}
		body, err := json.Marshal(item)
		if err != nil {
			return 0, fmt.Errorf("encoding seed item %q: %w", d.name, err)
		}
		docs = append(docs, storage.Document{ID: item.ID, Body: body})
	}
	if err := r.store.PutDocuments(CollectionMenu, docs); err != nil {
		return 0, fmt.Errorf("seeding menu: %w", err)
	}
	r.logger.Info("seeded menu", "items", len(docs))
	return len(docs), nil
}
