// Package catalog fetches creatures from a paginated catalog API.
//
// A page is a listing of detail URLs plus a cursor for the next listing.
// FetchPage resolves every listed URL into a full Item before returning,
// so callers only ever see complete pages.
package catalog

// Item is a single catalog entry. Items are immutable once fetched.
type Item struct {
	ID         int
	Name       string
	Artwork    string // empty when the source has no artwork
	Stats      []Stat
	Moves      []Move
	Categories []Category
}

// Stat is a named base stat.
type Stat struct {
	Name  string
	Value int
}

// Move is a named move the creature can learn.
type Move struct {
	Name string
}

// Category is a type tag. Slot is the tag's position on the creature.
type Category struct {
	Name string
	Slot int
}

// HasCategory reports whether the item carries a category with exactly this name.
func (it Item) HasCategory(name string) bool {
	for _, c := range it.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Page is one resolved page of the catalog.
type Page struct {
	Items []Item
	Next  string // empty at end of data
	Total int    // item count across all pages
}
