package filter

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abelbrown/bestiary/internal/catalog"
)

// DefaultMemoSize covers a handful of recent keystrokes per list version.
const DefaultMemoSize = 64

type viewKey struct {
	version uint64
	state   State
}

// Memo caches Visible and Categories keyed on a list version and the filter
// state. Callers must bump the version whenever the item list changes.
// Results are shared between callers and must not be modified.
type Memo struct {
	views      *lru.Cache[viewKey, []catalog.Item]
	categories *lru.Cache[uint64, []string]
}

// NewMemo creates a Memo holding up to size filtered views.
func NewMemo(size int) *Memo {
	if size <= 0 {
		size = DefaultMemoSize
	}
	views, _ := lru.New[viewKey, []catalog.Item](size)
	cats, _ := lru.New[uint64, []string](4)
	return &Memo{views: views, categories: cats}
}

// Visible is the memoized form of the package-level Visible.
func (m *Memo) Visible(version uint64, items []catalog.Item, s State) []catalog.Item {
	key := viewKey{version: version, state: s}
	if v, ok := m.views.Get(key); ok {
		return v
	}
	v := Visible(items, s)
	m.views.Add(key, v)
	return v
}

// Categories is the memoized form of the package-level Categories.
func (m *Memo) Categories(version uint64, items []catalog.Item) []string {
	if c, ok := m.categories.Get(version); ok {
		return c
	}
	c := Categories(items)
	m.categories.Add(version, c)
	return c
}
