package filter

import (
	"slices"
	"strings"
	"testing"

	"github.com/abelbrown/bestiary/internal/catalog"
)

func creature(id int, name string, categories ...string) catalog.Item {
	it := catalog.Item{ID: id, Name: name}
	for i, c := range categories {
		it.Categories = append(it.Categories, catalog.Category{Name: c, Slot: i + 1})
	}
	return it
}

func names(items []catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func starterPair() []catalog.Item {
	return []catalog.Item{
		creature(1, "bulbasaur", "grass", "poison"),
		creature(4, "charmander", "fire"),
	}
}

func TestVisibleScenario(t *testing.T) {
	items := starterPair()

	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{"no filter", State{}, []string{"bulbasaur", "charmander"}},
		{"search char", State{Search: "char"}, []string{"charmander"}},
		{"category grass", State{Category: "grass"}, []string{"bulbasaur"}},
		{"search z", State{Search: "z"}, []string{}},
		{"search z with grass", State{Search: "z", Category: "grass"}, []string{}},
		{"search z with fire", State{Search: "z", Category: "fire"}, []string{}},
		{"search and category disagree", State{Search: "char", Category: "grass"}, []string{}},
		{"search and category agree", State{Search: "saur", Category: "poison"}, []string{"bulbasaur"}},
		{"case insensitive search", State{Search: "CHAR"}, []string{"charmander"}},
		{"search is trimmed", State{Search: "  bulb "}, []string{"bulbasaur"}},
		{"category is exact", State{Category: "Fire"}, []string{}},
		{"unknown category", State{Category: "dragon"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Visible(items, tt.state))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Visible(%+v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestVisibleSearchProperty(t *testing.T) {
	items := []catalog.Item{
		creature(1, "Bulbasaur", "grass"),
		creature(2, "Ivysaur", "grass"),
		creature(4, "Charmander", "fire"),
		creature(25, "Pikachu", "electric"),
		creature(122, "Mr-Mime", "psychic", "fairy"),
	}

	for _, term := range []string{"a", "SAUR", "mime", "r-m", "u", "x"} {
		visible := Visible(items, State{Search: term})
		seen := make(map[int]bool)
		for _, it := range visible {
			seen[it.ID] = true
			if !containsFold(it.Name, term) {
				t.Errorf("term %q: %q should not be visible", term, it.Name)
			}
		}
		for _, it := range items {
			if !seen[it.ID] && containsFold(it.Name, term) {
				t.Errorf("term %q: %q excluded but matches", term, it.Name)
			}
		}
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func TestVisibleCategoryProperty(t *testing.T) {
	items := []catalog.Item{
		creature(1, "bulbasaur", "grass", "poison"),
		creature(6, "charizard", "fire", "flying"),
		creature(16, "pidgey", "normal", "flying"),
	}

	for _, cat := range Categories(items) {
		for _, it := range Visible(items, State{Category: cat}) {
			if !it.HasCategory(cat) {
				t.Errorf("category %q: %q visible without the tag", cat, it.Name)
			}
		}
	}

	all := Visible(items, State{Category: ""})
	if !slices.Equal(names(all), names(items)) {
		t.Errorf("all-types view = %v, want %v", names(all), names(items))
	}
}

func TestVisibleDoesNotMutateInput(t *testing.T) {
	items := starterPair()
	before := names(items)

	_ = Visible(items, State{Search: "char", Category: "fire"})

	if !slices.Equal(names(items), before) {
		t.Errorf("input changed: %v, want %v", names(items), before)
	}
}

func TestVisibleEmpty(t *testing.T) {
	result := Visible(nil, State{Search: "char"})
	if result == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(result) != 0 {
		t.Errorf("expected 0 items, got %d", len(result))
	}
}

func TestReset(t *testing.T) {
	items := starterPair()
	s := State{Search: "char", Category: "fire"}

	once := s.Reset()
	twice := once.Reset()

	if once != twice {
		t.Errorf("reset not idempotent: %+v vs %+v", once, twice)
	}
	if once.Active() {
		t.Error("reset state should be inactive")
	}
	if got := names(Visible(items, once)); !slices.Equal(got, names(items)) {
		t.Errorf("after reset visible = %v, want all", got)
	}
}

func TestActive(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{State{}, false},
		{State{Search: "   "}, false},
		{State{Search: "a"}, true},
		{State{Category: "fire"}, true},
	}
	for _, tt := range tests {
		if got := tt.state.Active(); got != tt.want {
			t.Errorf("%+v.Active() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestCategories(t *testing.T) {
	items := []catalog.Item{
		creature(6, "charizard", "fire", "flying"),
		creature(1, "bulbasaur", "grass", "poison"),
		creature(4, "charmander", "fire"),
		creature(0, "missingno"),
	}

	want := []string{"fire", "flying", "grass", "poison"}
	got := Categories(items)
	if !slices.Equal(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}

	if again := Categories(items); !slices.Equal(again, got) {
		t.Errorf("second call = %v, want %v", again, got)
	}

	reversed := slices.Clone(items)
	slices.Reverse(reversed)
	if rev := Categories(reversed); !slices.Equal(rev, want) {
		t.Errorf("reversed input = %v, want %v", rev, want)
	}
}

func TestCategoriesEmpty(t *testing.T) {
	if got := Categories(nil); len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
}
