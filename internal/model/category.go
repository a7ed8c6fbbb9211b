package model

import "fmt"

// Category is a fixed style-preference grouping ("tribe") used to
// filter catalog items and to segment throughput analytics.  The set
// is closed; it cannot be extended at runtime.
type Category string

const (
	TribeBoldReds     Category = "Bold Reds"
	TribeCrispWhites  Category = "Crisp Whites"
	TribeRose         Category = "Rosé All Day"
	TribeBubbles      Category = "Bubbles & Bright"
	TribeSweet        Category = "Sweet Finish"
	TribeNaturalFunky Category = "Natural & Funky"
)

// Categories returns every tribe in enumeration order.  The order is
// part of the contract: analytics tie-breaking relies on it.
func Categories() []Category {
	return []Category{
		TribeBoldReds,
		TribeCrispWhites,
		TribeRose,
		TribeBubbles,
		TribeSweet,
		TribeNaturalFunky,
	}
}

// CategoryRank returns the position of a tribe in enumeration order,
// or the length of the set for an unknown value so unknowns sort last.
func CategoryRank(c Category) int {
	for i, known := range Categories() {
		if known == c {
			return i
		}
	}
	return len(Categories())
}

// ParseCategory resolves a string to a known tribe.  Unknown values
// are an error; the set is closed.
func ParseCategory(s string) (Category, error) {
	for _, known := range Categories() {
		if string(known) == s {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown tribe %q", s)
}
