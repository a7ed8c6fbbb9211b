package model

// CatalogItem describes a single pourable vintage.  Catalog contents
// are supplied by an external collaborator (CMS or seed file); the
// core only reads them.
//
// Fields:
//  ID          – stable identifier used on tickets.
//  Category    – the one tribe this vintage belongs to.
//  Name        – display name.
//  Vintage     – vintage year.
//  Description – tasting notes for the pre-selection UI.
//  ABV         – alcohol by volume, percent (0–100).
//  PriceCents  – optional price in cents (nullable).
//  Available   – whether the booth currently stocks it.
type CatalogItem struct {
	ID          string   `json:"id"`
	Category    Category `json:"tribe"`
	Name        string   `json:"name"`
	Vintage     int      `json:"vintage"`
	Description string   `json:"description"`
	ABV         float64  `json:"abv"`
	PriceCents  *uint32  `json:"price_cents,omitempty"`
	Available   bool     `json:"available"`
}
