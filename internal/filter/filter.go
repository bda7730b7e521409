// Package filter provides pure filter functions for catalog items.
// All functions are simple: []Item in, []Item out. No side effects.
package filter

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/abelbrown/bestiary/internal/catalog"
)

// fold case-folds s. A cases.Caser keeps state, so each call builds its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// State is the user's filter selection. The zero State shows everything.
type State struct {
	Search   string // case-insensitive name substring
	Category string // exact category name; empty means all
}

// Active reports whether any filter narrows the view.
func (s State) Active() bool {
	return strings.TrimSpace(s.Search) != "" || s.Category != ""
}

// Reset returns the zero State. Both fields change in one value so no
// half-reset state is ever observable.
func (s State) Reset() State {
	return State{}
}

// ByName keeps items whose name contains term, ignoring case.
// A blank term keeps everything.
func ByName(items []catalog.Item, term string) []catalog.Item {
	if len(items) == 0 {
		return []catalog.Item{}
	}

	needle := fold(strings.TrimSpace(term))
	result := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if needle == "" || strings.Contains(fold(item.Name), needle) {
			result = append(result, item)
		}
	}
	return result
}

// ByCategory keeps items tagged with category (exact match).
// An empty category keeps everything.
func ByCategory(items []catalog.Item, category string) []catalog.Item {
	if len(items) == 0 {
		return []catalog.Item{}
	}

	result := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if category == "" || item.HasCategory(category) {
			result = append(result, item)
		}
	}
	return result
}

// Visible returns the items passing both the name and the category predicate,
// in their original order. The input slice is never modified.
func Visible(items []catalog.Item, s State) []catalog.Item {
	return ByCategory(ByName(items, s.Search), s.Category)
}

// Categories returns every category name used by items, deduplicated and
// sorted ascending.
func Categories(items []catalog.Item) []string {
	seen := make(map[string]bool)
	for _, item := range items {
		for _, c := range item.Categories {
			seen[c.Name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
