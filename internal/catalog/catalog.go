// Package catalog provides the read-only tribe-to-vintage lookup and
// the queue wait estimator used by the pre-selection flow.  Catalog
// contents are static input data owned by an external collaborator;
// this package never mutates them.
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/festwine/tasting-gate/internal/model"
)

// Catalog is an in-memory index of vintages grouped by tribe.  Items
// keep the order in which they were supplied.
type Catalog struct {
	byTribe map[model.Category][]model.CatalogItem
}

// New builds a Catalog from a flat item list, grouping by tribe and
// preserving input order within each tribe.
func New(items []model.CatalogItem) *Catalog {
	c := &Catalog{byTribe: make(map[model.Category][]model.CatalogItem)}
	for _, it := range items {
		c.byTribe[it.Category] = append(c.byTribe[it.Category], it)
	}
	return c
}

// LoadFile reads a JSON array of catalog items from path.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var items []model.CatalogItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(items), nil
}

// ItemsFor returns the ordered vintages of a tribe.  A tribe with no
// stocked items yields an empty slice; that is not an error.
func (c *Catalog) ItemsFor(tribe model.Category) []model.CatalogItem {
	items := c.byTribe[tribe]
	out := make([]model.CatalogItem, len(items))
	copy(out, items)
	return out
}

// Contains reports whether the tribe stocks the given vintage.
func (c *Catalog) Contains(tribe model.Category, vintageID string) bool {
	for _, it := range c.byTribe[tribe] {
		if it.ID == vintageID {
			return true
		}
	}
	return false
}

// EstimateWait estimates queue dwell time in whole minutes.  An empty
// queue waits zero; otherwise ceil(queueLen / capacity * avgMinutes).
// Capacity is guests served in parallel across booths, avgMinutes the
// mean service time per guest.
func EstimateWait(queueLen, capacity uint, avgMinutes float64) uint {
	if queueLen == 0 {
		return 0
	}
	if capacity == 0 {
		capacity = 1
	}
	return uint(math.Ceil(float64(queueLen) / float64(capacity) * avgMinutes))
}

// Seed returns the built-in demo catalog used when no CATALOG_PATH is
// configured.  Deployments normally replace it with venue data.
func Seed() *Catalog {
	price := func(c uint32) *uint32 { return &c }
	return New([]model.CatalogItem{
		{ID: "vin_barolo_19", Category: model.TribeBoldReds, Name: "Barolo Riserva", Vintage: 2019, Description: "Tar and roses, firm tannin.", ABV: 14.5, PriceCents: price(1400), Available: true},
		{ID: "vin_malbec_21", Category: model.TribeBoldReds, Name: "Uco Valley Malbec", Vintage: 2021, Description: "Dark plum, violet, cocoa.", ABV: 13.9, PriceCents: price(900), Available: true},
		{ID: "vin_gruner_23", Category: model.TribeCrispWhites, Name: "Grüner Veltliner", Vintage: 2023, Description: "White pepper and citrus pith.", ABV: 12.0, PriceCents: price(800), Available: true},
		{ID: "vin_albarino_23", Category: model.TribeCrispWhites, Name: "Rías Baixas Albariño", Vintage: 2023, Description: "Saline, stone fruit.", ABV: 12.5, Available: true},
		{ID: "vin_provence_23", Category: model.TribeRose, Name: "Provence Rosé", Vintage: 2023, Description: "Pale, dry, wild strawberry.", ABV: 12.5, PriceCents: price(850), Available: true},
		{ID: "vin_cremant_21", Category: model.TribeBubbles, Name: "Crémant de Loire", Vintage: 2021, Description: "Brioche and green apple.", ABV: 12.0, PriceCents: price(950), Available: true},
		{ID: "vin_tokaji_17", Category: model.TribeSweet, Name: "Tokaji Aszú 5 Puttonyos", Vintage: 2017, Description: "Apricot, honey, bright acid.", ABV: 11.0, PriceCents: price(1800), Available: true},
		{ID: "vin_petnat_23", Category: model.TribeNaturalFunky, Name: "Chenin Pét-Nat", Vintage: 2023, Description: "Cloudy, orchard funk.", ABV: 11.5, Available: true},
	})
}
